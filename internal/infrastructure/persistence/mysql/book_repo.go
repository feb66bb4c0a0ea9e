package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// ISBN重复时命中UNIQUE索引,转换为ErrISBNDuplicate
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Omit("Author", "Genre").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		if isForeignKeyError(err) {
			return book.ErrAuthorNotFound // 作者或分类不存在
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书,返回以ID为键的映射
// 购物车汇总、下单冻结价格用,一次查询避免N+1
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	if len(ids) == 0 {
		return map[uint]*book.Book{}, nil
	}

	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	books := make(map[uint]*book.Book, len(models))
	for i := range models {
		books[models[i].ID] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	result := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"title":       model.Title,
		"description": model.Description,
		"isbn":        model.ISBN,
		"price":       model.Price,
		"stock":       model.Stock,
		"author_id":   model.AuthorID,
		"genre_id":    model.GenreID,
		"cover_url":   model.CoverURL,
		"updated_at":  model.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 删除图书
// 被订单明细引用时外键RESTRICT拒绝删除,转换为ErrBookReferenced;
// 购物车条目由CASCADE自动清掉
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookReferenced
		}
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", keyword, keyword)
	}
	if params.GenreID != 0 {
		query = query.Where("genre_id = ?", params.GenreID)
	}
	if params.AuthorID != 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
// 下单冻结价格时锁定行,改价与下单互斥
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// toBookModel 领域实体 → GORM模型
// ISBN空串映射为NULL,不占用唯一索引
func toBookModel(b *book.Book) *BookModel {
	var isbn *string
	if b.ISBN != "" {
		isbn = &b.ISBN
	}
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		ISBN:        isbn,
		Price:       b.Price,
		Stock:       b.Stock,
		AuthorID:    b.AuthorID,
		GenreID:     b.GenreID,
		CoverURL:    b.CoverURL,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	isbn := ""
	if m.ISBN != nil {
		isbn = *m.ISBN
	}
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ISBN:        isbn,
		Price:       m.Price,
		Stock:       m.Stock,
		AuthorID:    m.AuthorID,
		GenreID:     m.GenreID,
		CoverURL:    m.CoverURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
