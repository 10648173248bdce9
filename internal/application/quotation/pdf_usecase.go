package quotation

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domainquo "github.com/jhoicas/backoffice-api/internal/domain/quotation"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// PDFUseCase arma el documento imprimible de una cotización y delega el render.
type PDFUseCase struct {
	uc            *UseCase
	currencyRepo  repository.CurrencyRepository
	generator     PDFGenerator
	verifyBaseURL string
}

// NewPDFUseCase construye el caso de uso. verifyBaseURL es la base pública del
// endpoint de verificación que se codifica en el QR.
func NewPDFUseCase(uc *UseCase, currencyRepo repository.CurrencyRepository, generator PDFGenerator, verifyBaseURL string) *PDFUseCase {
	return &PDFUseCase{
		uc:            uc,
		currencyRepo:  currencyRepo,
		generator:     generator,
		verifyBaseURL: verifyBaseURL,
	}
}

// GenerateQuotationPDF genera el PDF de la cotización. Devuelve los bytes y el
// nombre de archivo sugerido.
func (p *PDFUseCase) GenerateQuotationPDF(ctx context.Context, quotationID string) ([]byte, string, error) {
	quotation, err := p.uc.GetQuotation(ctx, quotationID)
	if err != nil {
		return nil, "", err
	}

	issuer, err := p.uc.userRepo.GetByCoUserID(quotation.CoUserID)
	if err != nil || issuer == nil {
		return nil, "", domain.ErrUserNotFound
	}

	tcs, err := p.uc.tcsRepo.GetByID(quotation.TcsID)
	if err != nil || tcs == nil {
		return nil, "", domain.ErrNotFound
	}

	currencyCode := ""
	if currency, err := p.currencyRepo.GetByID(quotation.CurrencyID); err == nil && currency != nil {
		currencyCode = currency.Code
	}

	doc := p.buildDocument(quotation, issuer, tcs, currencyCode)
	pdf, err := p.generator.GenerateQuotationPDF(doc)
	if err != nil {
		return nil, "", fmt.Errorf("render quotation pdf: %w", err)
	}
	return pdf, quotation.QuotationID + ".pdf", nil
}

// buildDocument resuelve frases de términos con los valores efectivos
// persistidos en la cotización (no con los de la plantilla, que pueden haber
// cambiado desde la emisión).
func (p *PDFUseCase) buildDocument(q *entity.Quotation, issuer *entity.User, tcs *entity.QuotationTcs, currencyCode string) Document {
	tcsInput := domainquo.TcsInput{
		QuotationTcs:            *tcs,
		EditedValidityDays:      &q.ValidityDays,
		EditedPaymentGraceDays:  q.PaymentGraceDays,
		EditedInitialPaymentPct: q.InitialPaymentPct,
		EditedLastPaymentPct:    q.LastPaymentPct,
	}

	lines := make([]DocumentLine, 0, len(q.LineItems))
	for _, it := range q.LineItems {
		lines = append(lines, DocumentLine{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Units:       it.Units,
			UnitPrice:   it.UnitPrice,
			Total:       it.Quantity.Mul(it.UnitPrice),
		})
	}

	address := q.Client.AddressLine1
	if q.Client.City != "" {
		address += ", " + q.Client.City
	}
	if q.Client.Country != "" {
		address += ", " + q.Client.Country
	}

	return Document{
		QuotationID:    q.QuotationID,
		IssuedAt:       q.Time.Format("02 Jan 2006"),
		IssuerName:     issuer.FullName(),
		IssuerCoUserID: issuer.CoUserID,
		CurrencyCode:   currencyCode,
		ClientName:     q.Client.Name,
		ContactPerson:  q.Client.ContactPerson,
		ClientEmail:    q.Client.Email,
		ClientPhone:    q.Client.Phone,
		ClientAddress:  address,
		Lines:          lines,
		SubTotal:       q.SubTotal,
		Vat:            q.Vat,
		GrandTotal:     q.GrandTotal,
		PaymentTerms:   domainquo.PaymentPhrase(tcsInput, q.TypeID, true),
		ValidityTerms:  domainquo.ValidityPhrase(tcsInput, true),
		DeliveryDays:   tcs.DeliveryDays,
		VerifyURL:      fmt.Sprintf("%s/%s", p.verifyBaseURL, q.QuotationID),
	}
}
