package catalog

import "testing"

func TestCatalog_AddAndVector(t *testing.T) {
	c := New([]string{"Action", "Comedy", "Drama"})
	c.Add(1, []string{"Action", "Drama"})

	vec, ok := c.Vector(1)
	if !ok {
		t.Fatalf("Vector(1) 应存在")
	}
	want := []float64{1, 0, 1}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}

	if _, ok := c.Vector(999); ok {
		t.Errorf("未收录物品 Vector 应返回 false")
	}
}

func TestCatalog_ClosedVocabulary(t *testing.T) {
	c := New([]string{"Action"})
	c.Add(1, []string{"Action", "Cyberpunk"}) // 词表外标签被丢弃

	vec, _ := c.Vector(1)
	if len(vec) != 1 || vec[0] != 1 {
		t.Errorf("vec = %v, want [1]", vec)
	}
	genres := c.Genres(1)
	if len(genres) != 1 || genres[0] != "Action" {
		t.Errorf("Genres(1) = %v, want [Action]", genres)
	}
}

func TestCatalog_DefaultGenres(t *testing.T) {
	c := New(nil)
	if len(c.Vocabulary()) != len(DefaultGenres) {
		t.Errorf("默认词表维度 = %d, want %d", len(c.Vocabulary()), len(DefaultGenres))
	}
	if i, ok := c.GenreIndex("Sci-Fi"); !ok || c.Vocabulary()[i] != "Sci-Fi" {
		t.Errorf("GenreIndex(Sci-Fi) 解析失败")
	}
}

func TestCatalog_ItemsSorted(t *testing.T) {
	c := New([]string{"Action"})
	for _, id := range []int64{30, 10, 20} {
		c.Add(id, []string{"Action"})
	}

	want := []int64{10, 20, 30}
	got := c.Items()
	if len(got) != len(want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Items()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCatalog_AddOverwrite(t *testing.T) {
	c := New([]string{"Action", "Comedy"})
	c.Add(1, []string{"Action"})
	c.Add(1, []string{"Comedy"}) // 覆盖

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	genres := c.Genres(1)
	if len(genres) != 1 || genres[0] != "Comedy" {
		t.Errorf("覆盖后 Genres(1) = %v, want [Comedy]", genres)
	}
}

func TestCatalog_GenresUnknownItem(t *testing.T) {
	c := New(nil)
	if got := c.Genres(42); got != nil {
		t.Errorf("Genres(42) = %v, want nil", got)
	}
}

func TestFromEntries(t *testing.T) {
	c := FromEntries([]string{"Action", "Drama"}, []Entry{
		{ItemID: 2, Genres: []string{"Drama"}},
		{ItemID: 1, Genres: []string{"Action"}},
	})
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got := c.Items(); got[0] != 1 || got[1] != 2 {
		t.Errorf("Items() = %v, want [1 2]", got)
	}
}
