package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-parser/internal/core/assistant"
	"recipe-parser/internal/core/queue"
	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/pkg/common"
	"recipe-parser/internal/pkg/metrics"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseRequest 直接提供食材與步驟文字
// 列表保留原始 JSON 型別，非列表或非字串元素由解析器拒絕
type ParseRequest struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Ingredients  any    `json:"ingredients"`
	Instructions any    `json:"instructions"`
}

// lists 取出食材與步驟列表
func (r ParseRequest) lists() (ingredients, instructions []any, err error) {
	if ingredients, err = recipe.AsList(recipe.FieldIngredients, r.Ingredients); err != nil {
		return nil, nil, err
	}
	if instructions, err = recipe.AsList(recipe.FieldInstructions, r.Instructions); err != nil {
		return nil, nil, err
	}
	return ingredients, instructions, nil
}

// FetchRequest 從網址抓取食譜
type FetchRequest struct {
	URL string `json:"url"`
}

// BatchRequest 批次抓取多個網址
type BatchRequest struct {
	URLs []string `json:"urls"`
}

// BatchItem 單一網址的結果
type BatchItem struct {
	URL    string                `json:"url"`
	Recipe *recipe.Recipe        `json:"recipe,omitempty"`
	Error  *common.ErrorResponse `json:"error,omitempty"`
}

// BatchResponse 批次結果，順序與請求相同
type BatchResponse struct {
	BatchID string      `json:"batch_id"`
	Results []BatchItem `json:"results"`
}

// CookQARequest 料理中的問答，cursor 由呼叫端保存
type CookQARequest struct {
	Recipe   *recipe.Recipe `json:"recipe"`
	Cursor   int            `json:"cursor"`
	Question string         `json:"question"`
}

// RecipeLoader 依網址取得解析後的食譜
type RecipeLoader interface {
	Load(ctx context.Context, url string) (*recipe.Recipe, error)
}

// Handler 食譜處理程序
type Handler struct {
	parser   *recipe.Parser
	loader   RecipeLoader
	queue    *queue.Manager
	maxBatch int
	debug    bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(parser *recipe.Parser, loader RecipeLoader, q *queue.Manager, maxBatch int, debug bool) *Handler {
	return &Handler{
		parser:   parser,
		loader:   loader,
		queue:    q,
		maxBatch: maxBatch,
		debug:    debug,
	}
}

// HandleParse 解析請求中的食材與步驟
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	start := time.Now()
	result, err := h.parseRequest(req)
	if err != nil {
		metrics.ObserveParse(start, 0, err, errors.Is(err, recipe.ErrInvalidInput))
		h.respondError(c, err)
		return
	}
	metrics.ObserveParse(start, len(result.Steps), nil, false)

	common.LogInfo("食譜解析完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(result.Ingredients)),
		zap.Int("steps", len(result.Steps)),
	)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseRequest(req ParseRequest) (*recipe.Recipe, error) {
	ingredients, instructions, err := req.lists()
	if err != nil {
		return nil, err
	}
	return h.parser.ParseRaw(req.Title, req.URL, ingredients, instructions)
}

// HandleFetch 抓取網址並解析
func (h *Handler) HandleFetch(c *gin.Context) {
	var req FetchRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		h.respondError(c, common.NewValidationError("url is required"))
		return
	}

	result, err := h.loader.Load(c.Request.Context(), req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleBatch 透過隊列並行抓取多個網址
func (h *Handler) HandleBatch(c *gin.Context) {
	var req BatchRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if len(req.URLs) == 0 {
		h.respondError(c, common.NewValidationError("urls is required"))
		return
	}
	if h.maxBatch > 0 && len(req.URLs) > h.maxBatch {
		h.respondError(c, common.NewValidationError(fmt.Sprintf("at most %d urls per batch", h.maxBatch)))
		return
	}

	ctx := c.Request.Context()
	batchID := uuid.New().String()
	common.LogInfo("開始批次解析",
		zap.String("batch_id", batchID),
		zap.Int("urls", len(req.URLs)),
		zap.String("request_id", requestid.Get(c)),
	)

	pending := make([]<-chan queue.Result, len(req.URLs))
	results := make([]BatchItem, len(req.URLs))
	for i, url := range req.URLs {
		results[i].URL = url
		url := url
		ch, err := h.queue.Submit(ctx, func(ctx context.Context) (interface{}, error) {
			return h.loader.Load(ctx, url)
		})
		if err != nil {
			results[i].Error = h.itemError(err)
			continue
		}
		pending[i] = ch
	}

	for i, ch := range pending {
		if ch == nil {
			continue
		}
		select {
		case res := <-ch:
			if res.Error != nil {
				results[i].Error = h.itemError(res.Error)
				continue
			}
			results[i].Recipe, _ = res.Value.(*recipe.Recipe)
		case <-ctx.Done():
			results[i].Error = h.itemError(ctx.Err())
		}
	}

	c.JSON(http.StatusOK, BatchResponse{BatchID: batchID, Results: results})
}

func (h *Handler) itemError(err error) *common.ErrorResponse {
	_, resp := common.ToResponse(toAPIError(err), h.debug)
	return &resp
}

// HandleCookQA 根據目前步驟回答問題
func (h *Handler) HandleCookQA(c *gin.Context) {
	var req CookQARequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if req.Recipe == nil {
		h.respondError(c, common.NewValidationError("recipe is required"))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.respondError(c, common.NewValidationError("question is required"))
		return
	}

	c.JSON(http.StatusOK, assistant.Answer(req.Recipe, req.Cursor, req.Question))
}
