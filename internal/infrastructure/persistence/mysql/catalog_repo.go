package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) book.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *book.Author) error {
	model := toAuthorModel(a)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = model.ID
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*book.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) Update(ctx context.Context, a *book.Author) error {
	result := getDB(ctx, r.db).Model(&AuthorModel{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"name":       a.Name,
		"bio":        a.Bio,
		"image_url":  a.ImageURL,
		"updated_at": a.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新作者失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrAuthorNotFound
	}
	return nil
}

// Delete 删除作者
// 其名下图书由外键CASCADE级联删除;若某本图书已被订单引用,
// 级联会被RESTRICT挡住,整体删除失败
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookReferenced
		}
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, page, pageSize int) ([]*book.Author, int64, error) {
	var models []AuthorModel
	var total int64

	query := getDB(ctx, r.db).Model(&AuthorModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*book.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

// genreRepository 分类仓储实现(MySQL)
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) book.GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *book.Genre) error {
	model := toGenreModel(g)
	if err := getDB(ctx, r.db).Omit("FeaturedBook").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	g.ID = model.ID
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*book.Genre, error) {
	var model GenreModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*book.Genre, error) {
	var model GenreModel
	err := getDB(ctx, r.db).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) Update(ctx context.Context, g *book.Genre) error {
	result := getDB(ctx, r.db).Model(&GenreModel{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"title":            g.Title,
		"slug":             g.Slug,
		"featured_book_id": g.FeaturedBookID,
		"updated_at":       g.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrGenreNotFound
	}
	return nil
}

// Delete 删除分类(名下图书级联删除,同作者删除的限制)
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&GenreModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookReferenced
		}
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrGenreNotFound
	}
	return nil
}

func (r *genreRepository) List(ctx context.Context) ([]*book.Genre, error) {
	var models []GenreModel
	if err := getDB(ctx, r.db).Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	genres := make([]*book.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// toAuthorModel 领域实体 → GORM模型
func toAuthorModel(a *book.Author) *AuthorModel {
	return &AuthorModel{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(m *AuthorModel) *book.Author {
	return &book.Author{
		ID:        m.ID,
		Name:      m.Name,
		Bio:       m.Bio,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toGenreModel 领域实体 → GORM模型
func toGenreModel(g *book.Genre) *GenreModel {
	return &GenreModel{
		ID:             g.ID,
		Title:          g.Title,
		Slug:           g.Slug,
		FeaturedBookID: g.FeaturedBookID,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(m *GenreModel) *book.Genre {
	return &book.Genre{
		ID:             m.ID,
		Title:          m.Title,
		Slug:           m.Slug,
		FeaturedBookID: m.FeaturedBookID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
