package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. GORM v2 + MySQL驱动,连接池参数来自配置
// 2. 开发环境打印SQL,生产环境静默
// 3. 启动时AutoMigrate表结构(生产环境应改用版本化迁移脚本)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 业务删除语义依赖外键的CASCADE/RESTRICT/SET NULL,迁移时必须建出约束
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意迁移顺序:被引用的表在前(外键约束依赖)
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CustomerModel{},
		&AddressModel{},
		&AuthorModel{},
		&GenreModel{},
		&BookModel{},
		&ReviewModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// infrastructure层的数据模型,携带GORM tag;
// domain层实体不依赖GORM,Repository负责两者转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码(bcrypt哈希)"`
	FirstName string    `gorm:"size:50;comment:名"`
	LastName  string    `gorm:"size:50;comment:姓"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// CustomerModel GORM客户档案模型
// 与users一对一;删除用户时级联删除档案
type CustomerModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"uniqueIndex;not null;comment:用户ID"`
	User      UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Phone     string     `gorm:"size:30;comment:联系电话"`
	BirthDate *time.Time `gorm:"type:date;comment:出生日期"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerModel) TableName() string {
	return "customers"
}

// AddressModel GORM收货地址模型
// 删除客户时级联删除地址;订单侧对地址是SET NULL弱引用
type AddressModel struct {
	ID         uint          `gorm:"primaryKey"`
	CustomerID uint          `gorm:"index;not null;comment:客户ID"`
	Customer   CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Street     string        `gorm:"size:255;not null;comment:街道"`
	City       string        `gorm:"size:255;not null;comment:城市"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AddressModel) TableName() string {
	return "addresses"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;comment:作者名"`
	Bio       string `gorm:"type:text;comment:作者简介"`
	ImageURL  string `gorm:"size:500;comment:作者照片URL"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuthorModel) TableName() string {
	return "authors"
}

// GenreModel GORM分类模型
// FeaturedBookID是对books的弱引用,推荐图书删除后置NULL
type GenreModel struct {
	ID             uint       `gorm:"primaryKey"`
	Title          string     `gorm:"size:30;not null;comment:分类名"`
	Slug           string     `gorm:"uniqueIndex;size:50;not null;comment:URL标识"`
	FeaturedBookID *uint      `gorm:"comment:推荐图书ID"`
	FeaturedBook   *BookModel `gorm:"foreignKey:FeaturedBookID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格int64存"分",避免浮点精度问题
// 2. ISBN用*string:允许多本书不填ISBN(NULL不参与唯一约束),非空时唯一
// 3. 删除作者/分类时级联删除图书(目录归属是强引用)
type BookModel struct {
	ID          uint        `gorm:"primaryKey"`
	Title       string      `gorm:"index:idx_search;size:255;not null;comment:书名"`
	Description string      `gorm:"type:text;comment:图书描述"`
	ISBN        *string     `gorm:"uniqueIndex;size:20;comment:ISBN号"`
	Price       int64       `gorm:"index:idx_list;not null;comment:价格(分)"`
	Stock       int         `gorm:"default:0;comment:库存数量"`
	AuthorID    uint        `gorm:"index;not null;comment:作者ID"`
	Author      AuthorModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GenreID     uint        `gorm:"index;not null;comment:分类ID"`
	Genre       GenreModel  `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
	CoverURL    string      `gorm:"size:500;comment:封面图片URL"`
	CreatedAt   time.Time   `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt   time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM书评模型
// (user_id, book_id)唯一索引:同一用户对同一本书只有一条书评,
// 重复提交走upsert更新原记录
type ReviewModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex:uk_user_book;not null;comment:用户ID"`
	User        UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID      uint      `gorm:"uniqueIndex:uk_user_book;not null;comment:图书ID"`
	Book        BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Score       int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Description string    `gorm:"type:text;comment:评论内容"`
	ImageURL    string    `gorm:"size:500;comment:晒图URL"`
	CreatedAt   time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// CartModel GORM购物车模型
// 主键为UUIDv4字符串(char(36)),由应用层生成
type CartModel struct {
	ID        string          `gorm:"primaryKey;type:char(36)"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车条目模型
// 设计说明:
// 1. (cart_id, book_id)唯一索引:并发加购同一本书时,
//    INSERT ... ON DUPLICATE KEY UPDATE保证只产生一行
// 2. 删除购物车级联删除条目;删除图书级联删除引用它的条目
type CartItemModel struct {
	ID       uint      `gorm:"primaryKey"`
	CartID   string    `gorm:"type:char(36);uniqueIndex:uk_cart_book;not null;comment:购物车ID"`
	Cart     CartModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	BookID   uint      `gorm:"uniqueIndex:uk_cart_book;not null;comment:图书ID"`
	Book     BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Quantity int       `gorm:"not null;comment:数量(>=1)"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. OrderNo唯一索引是订单号全局唯一的最终保证
// 2. CustomerID是RESTRICT强引用:客户存在订单时禁止删除(审计要求)
// 3. AddressID是SET NULL弱引用:地址删除不影响历史订单
// 4. PaymentStatus存单字符编码(P/C/F)
type OrderModel struct {
	ID            uint             `gorm:"primaryKey"`
	OrderNo       string           `gorm:"uniqueIndex;size:20;not null;comment:订单号"`
	CustomerID    uint             `gorm:"index;not null;comment:客户ID"`
	Customer      CustomerModel    `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	AddressID     *uint            `gorm:"comment:收货地址ID"`
	Address       *AddressModel    `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL"`
	PaymentStatus string           `gorm:"type:char(1);not null;default:'P';comment:支付状态(P待支付C成功F失败)"`
	TotalAmount   int64            `gorm:"not null;comment:订单总金额(分)"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	PlacedAt      time.Time        `gorm:"index;comment:下单时间"`
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// UnitPrice/BookTitle是下单时刻的快照;BookID是RESTRICT强引用,
// 被订单引用的图书禁止删除
type OrderItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null;comment:订单ID"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	Book      BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	BookTitle string    `gorm:"size:255;not null;comment:书名快照"`
	Quantity  int       `gorm:"not null;comment:购买数量"`
	UnitPrice int64     `gorm:"not null;comment:下单时单价(分)"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
