package catalog

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/cinerec/core"
)

// 目录的 Store 装载/下发格式：Hash，field 为物品 ID 十进制字符串，
// value 为类型标签的 JSON 数组，例如 "50" -> ["Action","Sci-Fi","War"]。

// LoadFromStore 从 KeyValueStore 的 Hash 中装载目录。
// 无法解析的 field/value 被跳过；Hash 为空时返回空目录而不是错误。
func LoadFromStore(ctx context.Context, kv core.KeyValueStore, key string, genres []string) (*Catalog, error) {
	fields, err := kv.HGetAll(ctx, key)
	if err != nil {
		return nil, err
	}

	c := New(genres)
	for field, raw := range fields {
		itemID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		var tags []string
		if json.Unmarshal(raw, &tags) != nil {
			continue
		}
		c.Add(itemID, tags)
	}
	return c, nil
}

// SaveToStore 将目录写入 KeyValueStore 的 Hash，供其他实例装载。
func (c *Catalog) SaveToStore(ctx context.Context, kv core.KeyValueStore, key string) error {
	for _, itemID := range c.order {
		tags := c.Genres(itemID)
		if tags == nil {
			tags = []string{}
		}
		raw, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		if err := kv.HSet(ctx, key, strconv.FormatInt(itemID, 10), raw); err != nil {
			return err
		}
	}
	return nil
}
