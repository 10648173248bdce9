package quotation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validTcsInput() TcsInput {
	return TcsInput{
		QuotationTcs: entity.QuotationTcs{
			ID:            1,
			TypeID:        entity.QuotationTypeSupply,
			DeliveryDays:  14,
			ValidityDays:  30,
			VatPercentage: 18,
			PaymentWords:  "Payment due {payment_grace_days_phrase}.",
			ValidityWords: "This quotation is valid for {validity_days} days.",
		},
		EditedValidityDays:     intPtr(45),
		EditedDeliveryDays:     intPtr(10),
		EditedPaymentGraceDays: intPtr(0),
	}
}

func TestVerifyTcs(t *testing.T) {
	t.Run("sin edicion no valida nada", func(t *testing.T) {
		tcs := TcsInput{} // valores editados ausentes, irrelevantes
		assert.Nil(t, VerifyTcs(tcs, entity.QuotationTypeSupply, false))
	})

	t.Run("edicion valida pasa", func(t *testing.T) {
		assert.Nil(t, VerifyTcs(validTcsInput(), entity.QuotationTypeSupply, true))
	})

	t.Run("gracia cero es valida para tipo suministro", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.EditedPaymentGraceDays = intPtr(0)
		assert.Nil(t, VerifyTcs(tcs, entity.QuotationTypeSupply, true))
	})

	t.Run("gracia ausente falla para tipo suministro", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.EditedPaymentGraceDays = nil
		errs := VerifyTcs(tcs, entity.QuotationTypeSupply, true)
		require.Len(t, errs, 1)
		assert.Equal(t, "TCs", errs[0].Origin)
	})

	t.Run("validez fuera de rango", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.EditedValidityDays = intPtr(400)
		errs := VerifyTcs(tcs, entity.QuotationTypeSupply, true)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Validity out of range")
	})

	t.Run("porcentajes deben sumar 100 en otros tipos", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.EditedInitialPaymentPct = intPtr(60)
		tcs.EditedLastPaymentPct = intPtr(50)
		errs := VerifyTcs(tcs, 2, true)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "not tallying")

		tcs.EditedLastPaymentPct = intPtr(40)
		assert.Nil(t, VerifyTcs(tcs, 2, true))
	})

	t.Run("errores multiples se acumulan", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.EditedValidityDays = nil
		tcs.EditedDeliveryDays = intPtr(0)
		tcs.EditedPaymentGraceDays = intPtr(-400)
		errs := VerifyTcs(tcs, entity.QuotationTypeSupply, true)
		assert.Len(t, errs, 3)
	})
}

func TestVerifyClientInfo(t *testing.T) {
	t.Run("cliente valido", func(t *testing.T) {
		assert.Nil(t, VerifyClientInfo(ClientInput{
			Name:  "ACME Corp",
			Email: "purchasing@acme.example",
			Phone: "+254712345678",
		}))
	})

	t.Run("exige nombre o contacto con 3+ caracteres", func(t *testing.T) {
		errs := VerifyClientInfo(ClientInput{Name: "AB"})
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Message, "client name or contact person")

		assert.Nil(t, VerifyClientInfo(ClientInput{ContactPerson: "Jane Doe"}))
	})

	t.Run("email invalido", func(t *testing.T) {
		errs := VerifyClientInfo(ClientInput{Name: "ACME Corp", Email: "not-an-email"})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid email")
	})

	t.Run("telefono invalido", func(t *testing.T) {
		errs := VerifyClientInfo(ClientInput{Name: "ACME Corp", Phone: "12ab"})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid phone")
	})

	t.Run("campo demasiado largo", func(t *testing.T) {
		long := make([]byte, MaxClientFieldLength+1)
		for i := range long {
			long[i] = 'a'
		}
		errs := VerifyClientInfo(ClientInput{Name: "ACME Corp", City: string(long)})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "too long")
	})
}

func TestVerifyClientInfoOnDraft(t *testing.T) {
	// el borrador solo exige nombre o contacto, el resto puede estar incompleto
	assert.Nil(t, VerifyClientInfoOnDraft(ClientInput{Name: "ACME", Email: "basura"}))
	assert.NotEmpty(t, VerifyClientInfoOnDraft(ClientInput{Email: "a@b.co"}))
}

func TestVerifyLineItems(t *testing.T) {
	valid := LineItemInput{
		Name:      "Steel pipe",
		Quantity:  decPtr("10"),
		Units:     "pcs",
		UnitPrice: decPtr("45.50"),
	}

	t.Run("linea valida", func(t *testing.T) {
		assert.Nil(t, VerifyLineItems([]LineItemInput{valid}))
	})

	t.Run("sin lineas", func(t *testing.T) {
		errs := VerifyLineItems(nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "No items provided.", errs[0].Message)
	})

	t.Run("faltantes agrupados por linea", func(t *testing.T) {
		errs := VerifyLineItems([]LineItemInput{{Description: "solo descripción"}})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Line item 1:")
		assert.Contains(t, errs[0].Message, "Name, Units, Quantity, UnitPrice field(s) missing.")
	})

	t.Run("unidades de un caracter son demasiado cortas", func(t *testing.T) {
		item := valid
		item.Units = "u"
		errs := VerifyLineItems([]LineItemInput{item})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Units field(s) too short.")
	})

	t.Run("cantidad negativa es invalida", func(t *testing.T) {
		item := valid
		item.Quantity = decPtr("-1")
		errs := VerifyLineItems([]LineItemInput{item})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Quantity field(s) invalid.")
	})

	t.Run("la descripcion es opcional", func(t *testing.T) {
		item := valid
		item.Description = ""
		assert.Nil(t, VerifyLineItems([]LineItemInput{item}))
	})
}

func TestCalculatePriceSummary(t *testing.T) {
	items := []LineItemInput{
		{Name: "A", Quantity: decPtr("2"), UnitPrice: decPtr("100.25")},
		{Name: "B", Quantity: decPtr("1.5"), UnitPrice: decPtr("80")},
		{Name: "incompleta, se ignora", Quantity: decPtr("99")},
	}

	t.Run("con IVA y redondeo hacia arriba", func(t *testing.T) {
		got := CalculatePriceSummary(items, false, 18)

		assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("320.50")),
			"subtotal esperado 320.50, obtenido %s", got.Subtotal)
		assert.True(t, got.Vat.Equal(decimal.RequireFromString("57.69")),
			"IVA esperado 57.69, obtenido %s", got.Vat)
		// 378.19 redondeado hacia arriba a la unidad
		assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString("379")),
			"gran total esperado 379, obtenido %s", got.GrandTotal)
	})

	t.Run("IVA excluido", func(t *testing.T) {
		got := CalculatePriceSummary(items, true, 18)

		assert.True(t, got.Vat.IsZero())
		assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString("321")))
	})

	t.Run("sin lineas todo es cero", func(t *testing.T) {
		got := CalculatePriceSummary(nil, false, 18)
		assert.True(t, got.Subtotal.IsZero())
		assert.True(t, got.Vat.IsZero())
		assert.True(t, got.GrandTotal.IsZero())
	})
}

func TestHumanizeGraceDays(t *testing.T) {
	tests := []struct {
		name string
		days *int
		want string
	}{
		{"nulo", nil, "N/A"},
		{"pago anticipado", intPtr(-365), "Advance payment"},
		{"antes de la entrega", intPtr(-15), "15 days before delivery"},
		{"singular antes", intPtr(-1), "1 day before delivery"},
		{"contra entrega", intPtr(0), "On delivery day"},
		{"singular despues", intPtr(1), "1 day after delivery"},
		{"despues de la entrega", intPtr(30), "30 days after delivery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanizeGraceDays(tt.days))
		})
	}
}

func TestPaymentPhrase(t *testing.T) {
	t.Run("tipo suministro con frase humanizada", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.PaymentGraceDays = intPtr(30)

		got := PaymentPhrase(tcs, entity.QuotationTypeSupply, false)
		assert.Equal(t, "Payment due 30 days after delivery.", got)
	})

	t.Run("tipo suministro editado usa los dias editados", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.PaymentGraceDays = intPtr(30)
		tcs.EditedPaymentGraceDays = intPtr(0)

		got := PaymentPhrase(tcs, entity.QuotationTypeSupply, true)
		assert.Equal(t, "Payment due On delivery day.", got)
	})

	t.Run("plantilla antigua con token numerico", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.PaymentWords = "Grace period: {payment_grace_days} days."
		tcs.PaymentGraceDays = intPtr(14)

		got := PaymentPhrase(tcs, entity.QuotationTypeSupply, false)
		assert.Equal(t, "Grace period: 14 days.", got)
	})

	t.Run("otros tipos sustituyen porcentajes", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.PaymentWords = "{initial_payment_percentage}% on order, {last_payment_percentage}% on completion."
		tcs.InitialPaymentPct = intPtr(60)
		tcs.LastPaymentPct = intPtr(40)

		got := PaymentPhrase(tcs, 2, false)
		assert.Equal(t, "60% on order, 40% on completion.", got)
	})

	t.Run("porcentajes ausentes rinden NA", func(t *testing.T) {
		tcs := validTcsInput()
		tcs.PaymentWords = "{initial_payment_percentage}/{last_payment_percentage}"

		got := PaymentPhrase(tcs, 2, false)
		assert.Equal(t, "N/A/N/A", got)
	})
}

func TestValidityPhrase(t *testing.T) {
	tcs := validTcsInput()

	assert.Equal(t, "This quotation is valid for 30 days.", ValidityPhrase(tcs, false))
	assert.Equal(t, "This quotation is valid for 45 days.", ValidityPhrase(tcs, true))
}

func TestGenerateQuotationID(t *testing.T) {
	now := time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("primera del mes", func(t *testing.T) {
		got := GenerateQuotationID(now, 0)
		assert.Equal(t, "Q240915999", got)
		assert.True(t, ValidateQuotationID(got))
	})

	t.Run("contador inverso decrece con cada emision", func(t *testing.T) {
		assert.Equal(t, "Q240915998", GenerateQuotationID(now, 1))
		assert.Equal(t, "Q240915900", GenerateQuotationID(now, 99))
	})

	t.Run("mes desbordado cuenta hacia arriba desde 1000", func(t *testing.T) {
		got := GenerateQuotationID(now, 999)
		assert.Equal(t, "Q2409152000", got)
		assert.True(t, ValidateQuotationID(got))
	})
}

func TestValidateQuotationID(t *testing.T) {
	assert.True(t, ValidateQuotationID("Q240915999"))
	assert.True(t, ValidateQuotationID("Q2409152000"))
	assert.False(t, ValidateQuotationID("240915999"), "debe empezar con Q")
	assert.False(t, ValidateQuotationID("Q2409"), "largo incorrecto")
	assert.False(t, ValidateQuotationID("Q24091599X"), "sufijo no numérico")
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2024, 9, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), MonthStart(now))
}
