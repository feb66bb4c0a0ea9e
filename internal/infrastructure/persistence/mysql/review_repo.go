package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/review"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// reviewRepository 书评仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Upsert 创建或更新书评
// 基于(user_id, book_id)唯一索引做INSERT ... ON DUPLICATE KEY UPDATE,
// 同一用户重复评论同一本书时原子地更新原记录
func (r *reviewRepository) Upsert(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)

	err := getDB(ctx, r.db).
		Omit("User", "Book").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "description", "image_url"}),
		}).
		Create(model).Error
	if err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrBookNotFound
		}
		return apperrors.Wrap(err, "保存书评失败")
	}

	// upsert命中更新分支时model.ID不可靠,按唯一键回读
	var saved ReviewModel
	if err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", rv.UserID, rv.BookID).
		First(&saved).Error; err != nil {
		return apperrors.Wrap(err, "读取书评失败")
	}
	rv.ID = saved.ID
	rv.CreatedAt = saved.CreatedAt
	return nil
}

// FindByUserAndBook 查找用户对某本书的书评
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}
	return toReviewEntity(&model), nil
}

// ListByBook 分页查询图书的书评(按创建时间倒序)
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var models []ReviewModel
	var total int64

	query := getDB(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", bookID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, total, nil
}

// RatingByBook 汇总图书评分
// 单条聚合SQL计算平均分和总数,无书评时平均分为0
func (r *reviewRepository) RatingByBook(ctx context.Context, bookID uint) (*review.Rating, error) {
	var result struct {
		Average float64
		Count   int64
	}

	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COALESCE(ROUND(AVG(score), 1), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&result).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "汇总图书评分失败")
	}

	return &review.Rating{Average: result.Average, Count: result.Count}, nil
}

// Delete 删除书评(按ID+用户双条件,保证只能删除本人书评)
func (r *reviewRepository) Delete(ctx context.Context, id, userID uint) error {
	result := getDB(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&ReviewModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// toReviewModel 领域实体 → GORM模型
func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:          rv.ID,
		UserID:      rv.UserID,
		BookID:      rv.BookID,
		Score:       rv.Score,
		Description: rv.Description,
		ImageURL:    rv.ImageURL,
		CreatedAt:   rv.CreatedAt,
	}
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:          m.ID,
		UserID:      m.UserID,
		BookID:      m.BookID,
		Score:       m.Score,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}
