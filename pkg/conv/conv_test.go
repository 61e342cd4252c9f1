package conv

import "testing"

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 3.14, 3.14, true},
		{"float32", float32(2), 2, true},
		{"int", 5, 5, true},
		{"int64", int64(7), 7, true},
		{"string", "x", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int", 5, 5, true},
		{"int64", int64(7), 7, true},
		{"float64 截断", 3.9, 3, true},
		{"string", "x", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToInt64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"s": "hello", "b": true}

	if got := ConfigGet(m, "s", "def"); got != "hello" {
		t.Errorf("ConfigGet(s) = %q", got)
	}
	if got := ConfigGet(m, "missing", "def"); got != "def" {
		t.Errorf("ConfigGet(missing) = %q, want def", got)
	}
	if got := ConfigGet(m, "s", false); got != false {
		t.Errorf("类型不符应取默认值")
	}
	if got := ConfigGet[string](nil, "s", "def"); got != "def" {
		t.Errorf("nil map 应取默认值")
	}
	if got := ConfigGet(m, "b", false); got != true {
		t.Errorf("ConfigGet(b) = %v, want true", got)
	}
}

func TestConfigGetNumeric(t *testing.T) {
	// YAML 数字解析常得到 int，float 字段要兼容
	m := map[string]any{"f": 1, "n": 2.0}

	if got := ConfigGetFloat64(m, "f", 0); got != 1 {
		t.Errorf("ConfigGetFloat64(f) = %v, want 1", got)
	}
	if got := ConfigGetInt(m, "n", 0); got != 2 {
		t.Errorf("ConfigGetInt(n) = %v, want 2", got)
	}
	if got := ConfigGetInt(m, "missing", 9); got != 9 {
		t.Errorf("缺 key 应取默认值: %v", got)
	}
}

func TestSliceConvert(t *testing.T) {
	in := []any{1, int64(2), 3.0, "x"}
	got := SliceToInt64(in)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("SliceToInt64 = %v, want [1 2 3]", got)
	}
	if SliceToInt64("not-a-slice") != nil {
		t.Errorf("非切片应返回 nil")
	}

	strs := SliceToString([]any{"a", 1, "b"})
	if len(strs) != 2 || strs[0] != "a" || strs[1] != "b" {
		t.Errorf("SliceToString = %v, want [a b]", strs)
	}
}
