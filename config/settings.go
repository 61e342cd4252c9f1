// Package config 提供配置驱动能力：推荐器参数（YAML）与 Pipeline Node 工厂。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/cinerec/hybrid"
	"github.com/rushteam/cinerec/svd"
)

// Settings 是推荐器的可调参数。
// 零值字段在 Normalize 后取默认值，因此 YAML 里只需写要覆盖的项。
type Settings struct {
	// NumComponents SVD 保留的隐因子数
	NumComponents int `yaml:"num_components"`

	// GenreWeight / RatingWeight 画像两路信号的组合权重
	GenreWeight  float64 `yaml:"genre_weight"`
	RatingWeight float64 `yaml:"rating_weight"`

	// ContentAlpha 内容预测中物品均值的正则权重
	ContentAlpha float64 `yaml:"content_alpha"`

	// DiversityPenalty 多样性惩罚系数
	DiversityPenalty float64 `yaml:"diversity_penalty"`

	// MinPopularRatings 进入热门榜的最低评分数
	MinPopularRatings int `yaml:"min_popular_ratings"`

	// LikeThreshold will-like 判定阈值
	LikeThreshold float64 `yaml:"like_threshold"`
}

// DefaultSettings 返回与 hybrid 包常量一致的默认参数。
func DefaultSettings() Settings {
	return Settings{
		NumComponents:     svd.DefaultNumComponents,
		GenreWeight:       hybrid.DefaultGenreWeight,
		RatingWeight:      hybrid.DefaultRatingWeight,
		ContentAlpha:      hybrid.DefaultContentAlpha,
		DiversityPenalty:  hybrid.DefaultDiversityPenalty,
		MinPopularRatings: hybrid.DefaultMinPopularCount,
		LikeThreshold:     hybrid.DefaultLikeThreshold,
	}
}

// Normalize 把零值字段补成默认值。
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.NumComponents <= 0 {
		s.NumComponents = def.NumComponents
	}
	if s.GenreWeight == 0 && s.RatingWeight == 0 {
		s.GenreWeight = def.GenreWeight
		s.RatingWeight = def.RatingWeight
	}
	if s.ContentAlpha == 0 {
		s.ContentAlpha = def.ContentAlpha
	}
	if s.DiversityPenalty == 0 {
		s.DiversityPenalty = def.DiversityPenalty
	}
	if s.MinPopularRatings == 0 {
		s.MinPopularRatings = def.MinPopularRatings
	}
	if s.LikeThreshold == 0 {
		s.LikeThreshold = def.LikeThreshold
	}
	return s
}

// LoadSettings 从 YAML 文件加载推荐器参数。
// 顶层 key 为 recommender，与 pipeline 配置可共用同一个文件。
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings 解析 YAML 内容为推荐器参数。
func ParseSettings(data []byte) (Settings, error) {
	var wrapper struct {
		Recommender Settings `yaml:"recommender"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Settings{}, fmt.Errorf("parse yaml: %w", err)
	}
	return wrapper.Recommender.Normalize(), nil
}

// SVDConfig 转换为因子分解引擎的拟合配置。
func (s Settings) SVDConfig() svd.Config {
	return svd.Config{NumComponents: s.NumComponents}
}

// HybridOptions 转换为混合推荐器的构建选项。
func (s Settings) HybridOptions() []hybrid.Option {
	return []hybrid.Option{
		hybrid.WithProfileWeights(s.GenreWeight, s.RatingWeight),
		hybrid.WithContentAlpha(s.ContentAlpha),
		hybrid.WithDiversityPenalty(s.DiversityPenalty),
		hybrid.WithMinPopularCount(s.MinPopularRatings),
		hybrid.WithLikeThreshold(s.LikeThreshold),
	}
}
