// Package types provides HTTP response type definitions.
package types

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// ProveRequest 证明请求
//
// 数值以十进制字符串传递，避免 JSON 数字丢失 128 位精度。
type ProveRequest struct {
	TotalMinted        string `json:"total_minted" binding:"required"`
	CollateralValueUSD string `json:"collateral_value_usd" binding:"required"`
}

// JournalResponse 解码后的公开日志（十进制字符串）
type JournalResponse struct {
	HealthFactor       string `json:"health_factor"`
	CollateralValueUSD string `json:"collateral_value_usd"`
	TotalMinted        string `json:"total_minted"`
}

// VerifyResponse 离线验证结果
type VerifyResponse struct {
	Valid   bool             `json:"valid"`
	Journal *JournalResponse `json:"journal"`
}

// IdentityResponse 程序标识
type IdentityResponse struct {
	ImageID string `json:"image_id"`
	CID     string `json:"cid"`
}
