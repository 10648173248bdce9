package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	appquotation "github.com/jhoicas/backoffice-api/internal/application/quotation"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// QuotationHandler maneja el ciclo de vida de cotizaciones (protegido salvo Verify).
type QuotationHandler struct {
	uc       *appquotation.UseCase
	pdfUC    *appquotation.PDFUseCase
	userRepo repository.UserRepository
}

// NewQuotationHandler construye el handler. userRepo resuelve el usuario
// autenticado, que los casos de uso reciben como actor.
func NewQuotationHandler(uc *appquotation.UseCase, pdfUC *appquotation.PDFUseCase, userRepo repository.UserRepository) *QuotationHandler {
	return &QuotationHandler{uc: uc, pdfUC: pdfUC, userRepo: userRepo}
}

// actor carga el usuario autenticado desde el token.
func (h *QuotationHandler) actor(c *fiber.Ctx) (*entity.User, error) {
	user, err := h.userRepo.GetByID(GetUserID(c))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "usuario del token no existe")
	}
	return user, nil
}

// Create godoc
// @Summary      Crear cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "Cotización con cliente y líneas"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	user, err := h.actor(c)
	if err != nil {
		return err
	}
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quotation, err := h.uc.CreateQuotation(c.Context(), user, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuotationResponse(quotation, time.Now()))
}

// GetByID godoc
// @Summary      Obtener cotización por su ID de negocio
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de negocio (Qyymmddnnn)"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	quotation, err := h.uc.GetQuotation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewQuotationResponse(quotation, time.Now()))
}

// filterFromQuery arma el filtro de listado desde la query string.
func filterFromQuery(c *fiber.Ctx) repository.QuotationFilter {
	limit, offset := pageParams(c)
	filter := repository.QuotationFilter{
		CoUserID:   c.Query("co_user_id"),
		ClientName: c.Query("client"),
		Limit:      limit,
		Offset:     offset,
	}
	if status := c.Query("status"); status != "" {
		filter.StatusID = entity.QuotationStatusIDByKey(status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = t.Add(24 * time.Hour)
		}
	}
	return filter
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        co_user_id  query  string  false  "Filtrar por emisor"
// @Param        status      query  string  false  "created, sent, accepted, rejected o expired"
// @Param        client      query  string  false  "Filtrar por nombre de cliente (subcadena)"
// @Param        from        query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.QuotationListResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	filter := filterFromQuery(c)
	quotations, total, err := h.uc.ListQuotations(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	items := make([]dto.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		items = append(items, dto.NewQuotationResponse(q, now))
	}
	return c.JSON(dto.QuotationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	})
}

// Summary godoc
// @Summary      Suma de totales de cotizaciones (mismos filtros que el listado)
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        co_user_id  query  string  false  "Filtrar por emisor"
// @Param        status      query  string  false  "Filtrar por estado"
// @Param        from        query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.QuotationSumResponse
// @Router       /api/quotations/summary [get]
func (h *QuotationHandler) Summary(c *fiber.Ctx) error {
	total, count, err := h.uc.SumQuotations(c.Context(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.QuotationSumResponse{Count: count, GrandTotal: total})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una cotización (solo el emisor)
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de negocio"
// @Param        body  body  dto.UpdateQuotationStatusRequest  true  "sent, accepted o rejected"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := h.actor(c)
	if err != nil {
		return err
	}
	var in dto.UpdateQuotationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), user, c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar el PDF de una cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de negocio"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfUC.GenerateQuotationPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Verify godoc
// @Summary      Verificación pública de una cotización (destino del QR)
// @Tags         quotations
// @Produce      json
// @Param        id  path  string  true  "ID de negocio"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /verify/quotation/{id} [get]
func (h *QuotationHandler) Verify(c *fiber.Ctx) error {
	quotation, err := h.uc.GetQuotation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	return c.JSON(fiber.Map{
		"quotation_id": quotation.QuotationID,
		"issued_at":    quotation.Time,
		"status":       entity.QuotationStatusKeys[quotation.StatusID],
		"is_expired":   quotation.IsExpired(now),
		"grand_total":  quotation.GrandTotal,
	})
}

// ListTcs godoc
// @Summary      Listar plantillas de términos y condiciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        type_id  query  int  false  "Filtrar por tipo de cotización"
// @Success      200  {array}  dto.TcsResponse
// @Router       /api/quotations/tcs [get]
func (h *QuotationHandler) ListTcs(c *fiber.Ctx) error {
	typeID := int64(c.QueryInt("type_id", 0))
	list, err := h.uc.ListTcs(c.Context(), typeID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TcsResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NewTcsResponse(t))
	}
	return c.JSON(out)
}

// TagUsers godoc
// @Summary      Etiquetar usuarios en una cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de negocio"
// @Param        body  body  dto.TagQuotationRequest  true  "Usuarios a etiquetar y mensaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/tags [post]
func (h *QuotationHandler) TagUsers(c *fiber.Ctx) error {
	user, err := h.actor(c)
	if err != nil {
		return err
	}
	var in dto.TagQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.TaggedUserIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tagged_user_ids es requerido"})
	}
	if err := h.uc.TagUsers(c.Context(), user, c.Params("id"), in.TaggedUserIDs, in.Message); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTags godoc
// @Summary      Listar etiquetas de una cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de negocio"
// @Success      200  {array}  dto.QuotationTagResponse
// @Router       /api/quotations/{id}/tags [get]
func (h *QuotationHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.uc.ListTags(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.QuotationTagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.NewQuotationTagResponse(tag))
	}
	return c.JSON(out)
}

// SaveDraft godoc
// @Summary      Guardar borrador de cotización (máximo 5 manuales por usuario)
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveDraftRequest  true  "Payload del formulario"
// @Success      201   {object}  dto.DraftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/drafts [post]
func (h *QuotationHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.SaveDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payload es requerido"})
	}
	userID := GetUserID(c)
	var draft *entity.QuotationDraft
	var err error
	if in.Auto {
		draft, err = h.uc.SaveAutoDraft(c.Context(), userID, in.Payload)
	} else {
		draft, err = h.uc.SaveDraft(c.Context(), userID, in.Payload)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDraftResponse(draft))
}

// ListDrafts godoc
// @Summary      Listar borradores del usuario autenticado
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DraftResponse
// @Router       /api/quotations/drafts [get]
func (h *QuotationHandler) ListDrafts(c *fiber.Ctx) error {
	drafts, err := h.uc.ListDrafts(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, dto.NewDraftResponse(d))
	}
	return c.JSON(out)
}

// DeleteDraft godoc
// @Summary      Borrar un borrador propio
// @Tags         quotations
// @Security     Bearer
// @Param        id  path  int  true  "ID del borrador"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/quotations/drafts/{id} [delete]
func (h *QuotationHandler) DeleteDraft(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.DeleteDraft(c.Context(), GetUserID(c), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAutoDraft godoc
// @Summary      Borrar el auto-borrador del usuario autenticado
// @Tags         quotations
// @Security     Bearer
// @Success      204
// @Router       /api/quotations/drafts/auto [delete]
func (h *QuotationHandler) DeleteAutoDraft(c *fiber.Ctx) error {
	if err := h.uc.DeleteAutoDraft(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
