package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apitypes "github.com/weisyn/hfproof/internal/api/http/types"
	"github.com/weisyn/hfproof/internal/core/pipeline"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/types"
)

// ProofHandlers 证明相关处理器
type ProofHandlers struct {
	packager *pipeline.Packager
	logger   log.Logger
}

// NewProofHandlers 创建证明处理器
func NewProofHandlers(packager *pipeline.Packager, logger log.Logger) *ProofHandlers {
	return &ProofHandlers{packager: packager, logger: logger}
}

// Prove 生成证明
//
// POST /v1/proofs
// 请求：{"total_minted":"1000","collateral_value_usd":"4000"}
// 响应：与 proof.json 相同的文档
func (h *ProofHandlers) Prove(c *gin.Context) {
	var req apitypes.ProveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid request body", err.Error())
		return
	}

	out, err := h.packager.ProduceProofFromText(c.Request.Context(), req.TotalMinted, req.CollateralValueUSD)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Verify 验证证明文档
//
// POST /v1/proofs/verify
// 请求：proof.json 的内容
func (h *ProofHandlers) Verify(c *gin.Context) {
	var doc types.ProofOutput
	if err := c.ShouldBindJSON(&doc); err != nil {
		writeError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid proof document", err.Error())
		return
	}

	j, err := h.packager.VerifyOutput(&doc)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, apitypes.NewSuccessResponse(&apitypes.VerifyResponse{
		Valid: true,
		Journal: &apitypes.JournalResponse{
			HealthFactor:       j.HealthFactor.String(),
			CollateralValueUSD: j.CollateralValueUSD.String(),
			TotalMinted:        j.TotalMinted.String(),
		},
	}))
}

// Identity 返回程序标识
//
// GET /v1/identity
func (h *ProofHandlers) Identity(c *gin.Context) {
	id, err := h.packager.ImageID()
	if err != nil {
		writePipelineError(c, err)
		return
	}
	resp := &apitypes.IdentityResponse{ImageID: "0x" + id.Hex()}
	if cid, err := id.CID(); err == nil {
		resp.CID = cid.String()
	} else {
		h.logger.Warnf("程序标识无法转换为CID: %v", err)
	}
	c.JSON(http.StatusOK, apitypes.NewSuccessResponse(resp))
}

// RegisterRoutes 注册证明路由
func (h *ProofHandlers) RegisterRoutes(v1 *gin.RouterGroup, limit gin.HandlerFunc) {
	proofs := v1.Group("/proofs")
	proofs.POST("", limit, h.Prove)
	proofs.POST("/verify", h.Verify)
	v1.GET("/identity", h.Identity)
}
