package handler

import (
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/store-orders/internal/auth"
	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, caller entities.Identity, params entities.CreateOrderParams) (entities.OrderDetails, error)
	UpdateStatus(ctx context.Context, caller entities.Identity, orderID int64, target entities.Status, notes *string) (entities.Order, error)
	ListOrders(ctx context.Context, caller entities.Identity, status *entities.Status) ([]entities.Order, error)
	ListStoreOrders(ctx context.Context, caller entities.Identity, storeID int64, status *entities.Status) ([]entities.Order, error)
	GetOrder(ctx context.Context, caller entities.Identity, id int64) (entities.OrderDetails, error)
}

//go:embed manifest.html
var manifestHTML string

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	ids      IDCodec
	manifest *template.Template
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService, ids IDCodec) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
		ids:      ids,
		manifest: template.Must(template.New("manifest").Funcs(manifestFuncs).Parse(manifestHTML)),
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/store/{store_id}", h.ListStoreOrders)
		r.Get("/{id}", h.GetOrder)
		r.Get("/{id}/manifest", h.GetManifest)
		r.Put("/{id}/status", h.UpdateStatus)
	})
}

// ListOrders возвращает заказы, доступные вызывающему.
// @Summary      Список заказов
// @Description  Админ видит все заказы, сотрудник магазина только заказы своего магазина. Сначала новые.
// @Tags         orders
// @Security     BearerAuth
// @Param        status  query     string  false  "Фильтр по статусу"  Enums(Pending, Processing, Shipped, Delivered, Cancelled, Refunded)
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      400  {object}  utils.Response  "Неизвестный статус"
// @Failure      401  {object}  utils.Response  "Нет авторизации"
// @Failure      403  {object}  utils.Response  "Нет доступа"
// @Failure      500  {object}  utils.Response  "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, entities.ErrUnauthenticated)
		return
	}

	status, err := statusFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	orders, err := h.svc.ListOrders(ctx, caller, status)
	if err != nil {
		h.writeError(w, r, err, slog.Int64("user_id", caller.UserID))
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(h.ids, orders), http.StatusOK)
}

// ListStoreOrders возвращает заказы конкретного магазина.
// @Summary      Заказы магазина
// @Tags         orders
// @Security     BearerAuth
// @Param        store_id  path      string  true   "Идентификатор магазина"
// @Param        status    query     string  false  "Фильтр по статусу"
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      400  {object}  utils.Response  "Некорректный идентификатор"
// @Failure      401  {object}  utils.Response  "Нет авторизации"
// @Failure      403  {object}  utils.Response  "Чужой магазин"
// @Failure      500  {object}  utils.Response  "Внутренняя ошибка сервера"
// @Router       /orders/store/{store_id} [get]
func (h *HTTPHandler) ListStoreOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, entities.ErrUnauthenticated)
		return
	}

	storeID, err := h.pathID(r, "store_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status, err := statusFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	orders, err := h.svc.ListStoreOrders(ctx, caller, storeID, status)
	if err != nil {
		h.writeError(w, r, err, slog.Int64("store_id", storeID))
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(h.ids, orders), http.StatusOK)
}

// GetOrder возвращает заказ с товарами.
// @Summary      Получить заказ
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  utils.Response{data=OrderWithItems}
// @Failure      400  {object}  utils.Response  "Некорректный идентификатор"
// @Failure      401  {object}  utils.Response  "Нет авторизации"
// @Failure      403  {object}  utils.Response  "Нет доступа"
// @Failure      404  {object}  utils.Response  "Заказ не найден"
// @Failure      500  {object}  utils.Response  "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	details, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	utils.WriteData(w, OrderDetailsEntityToJSON(h.ids, details), http.StatusOK)
}

// GetManifest отдает печатную форму заказа.
// @Summary      Манифест заказа
// @Tags         orders
// @Security     BearerAuth
// @Produce      html
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {string}  string  "HTML документ"
// @Failure      404  {object}  utils.Response  "Заказ не найден"
// @Router       /orders/{id}/manifest [get]
func (h *HTTPHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	details, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.manifest.Execute(w, newManifestView(h.ids, details)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render manifest", slog.Any("error", err), slog.Int64("order_id", details.ID))
	}
}

// CreateOrder создает заказ по текущим ценам каталога.
// @Summary      Создать заказ
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        order  body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  utils.Response{data=OrderWithItems}
// @Failure      400  {object}  utils.Response  "Ошибка валидации"
// @Failure      401  {object}  utils.Response  "Нет авторизации"
// @Failure      403  {object}  utils.Response  "Чужой магазин"
// @Failure      404  {object}  utils.Response  "Товар не найден"
// @Failure      500  {object}  utils.Response  "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, entities.ErrUnauthenticated)
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	params, err := CreateOrderJSONToParams(h.ids, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.svc.CreateOrder(ctx, caller, params)
	if err != nil {
		h.writeError(w, r, err, slog.Int64("store_id", params.StoreID), slog.Int64("user_id", caller.UserID))
		return
	}

	utils.WriteData(w, OrderDetailsEntityToJSON(h.ids, details), http.StatusCreated)
}

// UpdateStatus меняет статус заказа.
// @Summary      Сменить статус заказа
// @Description  Админ переводит заказ из Pending в Shipped или Delivered. Магазин может только отметить доставку своего заказа, повторная отметка не ошибка.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        id      path      string               true  "Идентификатор заказа"
// @Param        status  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200  {object}  utils.Response{data=Order}
// @Failure      400  {object}  utils.Response  "Недопустимый переход"
// @Failure      401  {object}  utils.Response  "Нет авторизации"
// @Failure      403  {object}  utils.Response  "Нет доступа"
// @Failure      404  {object}  utils.Response  "Заказ не найден"
// @Failure      500  {object}  utils.Response  "Внутренняя ошибка сервера"
// @Router       /orders/{id}/status [put]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, entities.ErrUnauthenticated)
		return
	}

	orderID, err := h.pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	target, err := entities.ParseStatus(req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.svc.UpdateStatus(ctx, caller, orderID, target, req.Notes)
	if err != nil {
		h.writeError(w, r, err, slog.Int64("order_id", orderID))
		return
	}

	utils.WriteData(w, OrderEntityToJSON(h.ids, order), http.StatusOK)
}

func (h *HTTPHandler) loadOrder(w http.ResponseWriter, r *http.Request) (entities.OrderDetails, bool) {
	ctx := r.Context()
	caller, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, entities.ErrUnauthenticated)
		return entities.OrderDetails{}, false
	}

	orderID, err := h.pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return entities.OrderDetails{}, false
	}

	details, err := h.svc.GetOrder(ctx, caller, orderID)
	if err != nil {
		h.writeError(w, r, err, slog.Int64("order_id", orderID))
		return entities.OrderDetails{}, false
	}
	return details, true
}

func (h *HTTPHandler) pathID(r *http.Request, param string) (int64, error) {
	id, err := h.ids.Decode(chi.URLParam(r, param))
	if err != nil {
		return 0, errInvalidField(param, err)
	}
	return id, nil
}

func statusFilter(r *http.Request) (*entities.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status, err := entities.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
