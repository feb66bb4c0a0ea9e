package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试依赖一个已启动的服务实例(本地 go run ./cmd/api),
// 服务未启动时整组测试跳过而非失败

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	CustomerID uint   `json:"customer_id"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       uint   `json:"user_id"`
}

// CartData 购物车创建响应数据
type CartData struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// CartItemData 购物车条目响应数据
type CartItemData struct {
	ID       uint   `json:"id"`
	CartID   string `json:"cart_id"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// CartViewData 购物车视图响应数据
type CartViewData struct {
	ID          string `json:"id"`
	TotalAmount int64  `json:"total_amount"`
	TotalYuan   string `json:"total_yuan"`
	Items       []struct {
		ID        uint   `json:"id"`
		BookID    uint   `json:"book_id"`
		UnitPrice int64  `json:"unit_price"`
		Quantity  int    `json:"quantity"`
		Subtotal  int64  `json:"subtotal"`
	} `json:"items"`
}

// OrderData 订单响应数据
type OrderData struct {
	ID            uint   `json:"id"`
	OrderNo       string `json:"order_no"`
	PaymentStatus string `json:"payment_status"`
	TotalAmount   int64  `json:"total_amount"`
	TotalYuan     string `json:"total_yuan"`
	Items         []struct {
		BookID    uint   `json:"book_id"`
		BookTitle string `json:"book_title"`
		Quantity  int    `json:"quantity"`
		UnitPrice int64  `json:"unit_price"`
		Subtotal  int64  `json:"subtotal"`
	} `json:"items"`
}

// RequireServer 检查服务是否可达,不可达则跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// doJSON 发送带JSON body的请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
// 时间戳保证重复运行不撞唯一索引
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN(978+10位数字)
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// RegisterTestUser 注册测试用户并返回邮箱和Token
func RegisterTestUser(t *testing.T, prefix string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(prefix)
	registerReq := map[string]string{
		"email":      email,
		"password":   "passw0rd1",
		"first_name": "测试",
		"last_name":  "用户",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "passw0rd1",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// PublishTestBook 上架测试图书(连同作者/分类)并返回图书ID
// priceYuan形如"9.99"
func PublishTestBook(t *testing.T, token, title, priceYuan string) uint {
	t.Helper()

	authorResp := PostJSON(t, BaseURL+"/authors", map[string]string{
		"name": "集成测试作者",
	}, token)
	require.Equal(t, 0, authorResp.Code, "创建作者失败: %s", authorResp.Message)
	var author struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(authorResp.Data, &author))

	genreResp := PostJSON(t, BaseURL+"/genres", map[string]string{
		"title": fmt.Sprintf("集成测试分类%d", time.Now().UnixNano()),
	}, token)
	require.Equal(t, 0, genreResp.Code, "创建分类失败: %s", genreResp.Message)
	var genre struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(genreResp.Data, &genre))

	bookResp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":      title,
		"isbn":       GenerateTestISBN(),
		"price_yuan": priceYuan,
		"stock":      100,
		"author_id":  author.ID,
		"genre_id":   genre.ID,
	}, token)
	require.Equal(t, 0, bookResp.Code, "图书上架失败: %s", bookResp.Message)

	var book struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(bookResp.Data, &book))
	return book.ID
}

// CreateTestCart 创建购物车并返回UUID
func CreateTestCart(t *testing.T) string {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/carts", nil, "")
	require.Equal(t, 0, resp.Code, "创建购物车失败: %s", resp.Message)

	var data CartData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.ID, 36, "购物车ID应为UUID")
	return data.ID
}
