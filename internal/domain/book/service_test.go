package book

import (
	"testing"
)

func TestValidateISBN(t *testing.T) {
	cases := []struct {
		isbn    string
		wantErr bool
	}{
		{"", false},                  // 未填写,合法
		{"9787111558422", false},     // ISBN-13
		{"978-7-111-55842-2", false}, // 带连字符
		{"7111558421", false},        // ISBN-10
		{"711155842X", false},        // ISBN-10末位X
		{"12345", true},              // 位数不足
		{"97871115584221", true},     // 位数过多
		{"97871115584ab", true},      // 含非法字符
	}

	for _, c := range cases {
		err := ValidateISBN(c.isbn)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateISBN(%q) = %v, 期望出错 = %v", c.isbn, err, c.wantErr)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Science Fiction", "science-fiction"},
		{"  Mystery & Thriller  ", "mystery-thriller"},
		{"Go", "go"},
		{"A--B", "a-b"},
	}

	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, 期望 %q", c.title, got, c.want)
		}
	}
}

func TestBookUpdatePrice(t *testing.T) {
	b, err := NewBook("Go程序设计", "入门到进阶", "9787111558422", 9900, 10, 1, 1, "")
	if err != nil {
		t.Fatalf("创建图书失败: %v", err)
	}

	if err := b.UpdatePrice(0); err != ErrInvalidPrice {
		t.Errorf("价格为0应返回ErrInvalidPrice, 实际: %v", err)
	}
	if err := b.UpdatePrice(12900); err != nil {
		t.Errorf("合法价格更新失败: %v", err)
	}
	if b.Price != 12900 {
		t.Errorf("价格未更新, 实际: %d", b.Price)
	}
}

func TestNewBookValidation(t *testing.T) {
	if _, err := NewBook("", "desc", "", 100, 1, 1, 1, ""); err != ErrInvalidTitle {
		t.Errorf("空书名应返回ErrInvalidTitle, 实际: %v", err)
	}
	if _, err := NewBook("t", "desc", "", -1, 1, 1, 1, ""); err != ErrInvalidPrice {
		t.Errorf("负价格应返回ErrInvalidPrice, 实际: %v", err)
	}
	if _, err := NewBook("t", "desc", "", 100, -1, 1, 1, ""); err != ErrInvalidStock {
		t.Errorf("负库存应返回ErrInvalidStock, 实际: %v", err)
	}
}

func TestNewGenreAutoSlug(t *testing.T) {
	g, err := NewGenre("Science Fiction", "")
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if g.Slug != "science-fiction" {
		t.Errorf("slug自动生成错误, 实际: %q", g.Slug)
	}

	g2, err := NewGenre("Fantasy", "custom-slug")
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if g2.Slug != "custom-slug" {
		t.Errorf("显式slug不应被覆盖, 实际: %q", g2.Slug)
	}
}
