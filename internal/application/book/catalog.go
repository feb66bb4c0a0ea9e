package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// CatalogUseCase 目录维护用例(作者/分类)
type CatalogUseCase struct {
	authorRepo book.AuthorRepository
	genreRepo  book.GenreRepository
	bookRepo   book.Repository
}

// NewCatalogUseCase 创建目录用例
func NewCatalogUseCase(
	authorRepo book.AuthorRepository,
	genreRepo book.GenreRepository,
	bookRepo book.Repository,
) *CatalogUseCase {
	return &CatalogUseCase{
		authorRepo: authorRepo,
		genreRepo:  genreRepo,
		bookRepo:   bookRepo,
	}
}

// AuthorResponse 作者响应
// 详情接口带全量简介和名下图书数;列表接口只给截断简介
type AuthorResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	ShortBio  string `json:"short_bio,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	BookCount int64  `json:"book_count,omitempty"`
}

// CreateAuthor 创建作者
func (uc *CatalogUseCase) CreateAuthor(ctx context.Context, name, bio, imageURL string) (*AuthorResponse, error) {
	a, err := book.NewAuthor(name, bio, imageURL)
	if err != nil {
		return nil, err
	}
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAuthorResponse(a), nil
}

// GetAuthor 查询作者(附名下图书数)
func (uc *CatalogUseCase) GetAuthor(ctx context.Context, id uint) (*AuthorResponse, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toAuthorResponse(a)
	if _, total, err := uc.bookRepo.List(ctx, book.ListParams{Page: 1, PageSize: 1, AuthorID: id}); err == nil {
		resp.BookCount = total
	}
	return resp, nil
}

// ListAuthors 分页查询作者
func (uc *CatalogUseCase) ListAuthors(ctx context.Context, page, pageSize int) ([]*AuthorResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	authors, total, err := uc.authorRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]*AuthorResponse, len(authors))
	for i, a := range authors {
		resp[i] = toAuthorResponse(a)
	}
	return resp, total, nil
}

// DeleteAuthor 删除作者(名下图书级联删除)
func (uc *CatalogUseCase) DeleteAuthor(ctx context.Context, id uint) error {
	return uc.authorRepo.Delete(ctx, id)
}

// GenreResponse 分类响应
type GenreResponse struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	FeaturedBookID *uint  `json:"featured_book_id,omitempty"`
}

// CreateGenre 创建分类(slug为空时自动生成)
func (uc *CatalogUseCase) CreateGenre(ctx context.Context, title, slug string) (*GenreResponse, error) {
	g, err := book.NewGenre(title, slug)
	if err != nil {
		return nil, err
	}
	if err := uc.genreRepo.Create(ctx, g); err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// ListGenres 查询全部分类
func (uc *CatalogUseCase) ListGenres(ctx context.Context) ([]*GenreResponse, error) {
	genres, err := uc.genreRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]*GenreResponse, len(genres))
	for i, g := range genres {
		resp[i] = toGenreResponse(g)
	}
	return resp, nil
}

// SetFeaturedBook 设置分类推荐图书
// 业务规则:图书必须存在且归属于该分类
func (uc *CatalogUseCase) SetFeaturedBook(ctx context.Context, genreID, bookID uint) (*GenreResponse, error) {
	g, err := uc.genreRepo.FindByID(ctx, genreID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b.GenreID != genreID {
		return nil, book.ErrBookNotFound
	}

	g.SetFeaturedBook(bookID)
	if err := uc.genreRepo.Update(ctx, g); err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// DeleteGenre 删除分类(名下图书级联删除)
func (uc *CatalogUseCase) DeleteGenre(ctx context.Context, id uint) error {
	return uc.genreRepo.Delete(ctx, id)
}

func toAuthorResponse(a *book.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:       a.ID,
		Name:     a.Name,
		Bio:      a.Bio,
		ShortBio: a.ShortBio(),
		ImageURL: a.ImageURL,
	}
}

func toGenreResponse(g *book.Genre) *GenreResponse {
	return &GenreResponse{
		ID:             g.ID,
		Title:          g.Title,
		Slug:           g.Slug,
		FeaturedBookID: g.FeaturedBookID,
	}
}
