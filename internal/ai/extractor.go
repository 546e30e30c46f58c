package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	apperrors "wealthfolio/internal/errors"
	"wealthfolio/internal/models"
)

// invoiceSchema constrains the extraction response. Field descriptions carry
// hints for Russian utility bills (ЕПД), the most common input.
var invoiceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"vendorName":    {Type: genai.TypeString, Description: "Name of the vendor, payee, or management organization (e.g., ООО 'МосОблЕИРЦ')"},
		"invoiceNumber": {Type: genai.TypeString, Description: "Invoice identifier number"},
		"accountNumber": {Type: genai.TypeString, Description: "Customer account number (specifically 'Лицевой счет' for Russian invoices)"},
		"city":          {Type: genai.TypeString, Description: "City name extracted from the address line (e.g. from 'Адрес: ... Г.О. ДОЛГОПРУДНЫЙ'). Extract just the city name."},
		"date":          {Type: genai.TypeString, Description: "Invoice date in YYYY-MM-DD format. Look for 'Period' or date of issue."},
		"dueDate":       {Type: genai.TypeString, Description: "Payment due date in YYYY-MM-DD format (e.g., 'оплатить счет до')"},
		"subtotal":      {Type: genai.TypeNumber, Description: "Sum of line items before tax or additional charges"},
		"tax":           {Type: genai.TypeNumber, Description: "Total tax amount if applicable"},
		"total":         {Type: genai.TypeNumber, Description: "Final total amount due (Look for 'ИТОГО К ОПЛАТЕ')"},
		"currency":      {Type: genai.TypeString, Description: "Currency code (e.g., RUB, USD, EUR)"},
		"category":      {Type: genai.TypeString, Description: "Category of expense (e.g., Utilities, Housing, Software, Office Supplies)"},
		"lineItems": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"description": {Type: genai.TypeString, Description: "Name of service or product (e.g., 'Виды услуг', 'ВЗНОС НА КАПИТАЛЬНЫЙ РЕМОНТ', 'ОТОПЛЕНИЕ')"},
					"quantity":    {Type: genai.TypeNumber, Description: "Volume or quantity (e.g., 'Объем услуг' or 'Объем')"},
					"unitPrice":   {Type: genai.TypeNumber, Description: "Tariff or price per unit (e.g., 'Тариф')"},
					"total":       {Type: genai.TypeNumber, Description: "Total cost for this item (e.g., 'Начислено' or 'ИТОГО')"},
				},
				Required: []string{"description", "total"},
			},
		},
	},
	Required: []string{"vendorName", "total", "lineItems"},
}

const extractionPrompt = `Analyze this document and extract the structured invoice data.

The document might be in Russian (e.g., "ЕДИНЫЙ ПЛАТЕЖНЫЙ ДОКУМЕНТ").
- Map 'Лицевой счет' to 'accountNumber'.
- Look for the address line starting with 'Адрес:'. Extract the city name (e.g. 'ДОЛГОПРУДНЫЙ' or 'ЛОБНЯ') into the 'city' field.
- Map 'ИТОГО К ОПЛАТЕ' or the final payable amount to 'total'.
- Map 'Период' or the document date to 'date'.

EXTRACTING LINE ITEMS:
- Look for the table section often titled "РАСЧЕТ РАЗМЕРА ПЛАТЫ" or "Виды услуг".
- Extract each row representing a service (e.g., ВЗНОС НА КАПИТАЛЬНЫЙ РЕМОНТ, ВОДООТВЕДЕНИЕ, ОТОПЛЕНИЕ, ХОЛОДНОЕ В/С, ГОРЯЧЕЕ В/С).
- 'description': Name of the service.
- 'quantity': The volume/consumption amount (Объем).
- 'unitPrice': The tariff rate (Тариф).
- 'total': The charged amount (Начислено or Итого).

- Map 'Получатель платежа' or 'Управляющая организация' to 'vendorName'.
- If currency is 'руб.', use 'RUB'.

If a field is missing, make a reasonable estimate or leave it as null/0.`

// extractedInvoice mirrors the schema's field names.
type extractedInvoice struct {
	VendorName    string  `json:"vendorName"`
	InvoiceNumber string  `json:"invoiceNumber"`
	AccountNumber string  `json:"accountNumber"`
	City          string  `json:"city"`
	Date          string  `json:"date"`
	DueDate       string  `json:"dueDate"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
	Category      string  `json:"category"`
	LineItems     []struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
		Total       float64 `json:"total"`
	} `json:"lineItems"`
}

// Extractor turns scanned documents into structured invoices.
type Extractor struct {
	generator Generator
	now       func() time.Time
}

// NewExtractor creates a new Extractor.
func NewExtractor(generator Generator) *Extractor {
	return &Extractor{generator: generator, now: time.Now}
}

// Extract sends the document to the model and maps the response into an
// invoice in Draft status. Keyword selection happens downstream.
func (e *Extractor) Extract(ctx context.Context, filename, mimeType string, data []byte) (models.Invoice, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		{Text: extractionPrompt},
	}

	text, err := e.generator.GenerateStructured(ctx, parts, invoiceSchema)
	if err != nil {
		return models.Invoice{}, err
	}

	var extracted extractedInvoice
	if err := json.Unmarshal([]byte(text), &extracted); err != nil {
		return models.Invoice{}, apperrors.Wrap(apperrors.ErrExternalService, "parsing extraction response", err)
	}

	inv := models.Invoice{
		ID:            uuid.NewString(),
		VendorName:    extracted.VendorName,
		InvoiceNumber: extracted.InvoiceNumber,
		AccountNumber: extracted.AccountNumber,
		City:          extracted.City,
		Date:          extracted.Date,
		DueDate:       extracted.DueDate,
		Subtotal:      extracted.Subtotal,
		Tax:           extracted.Tax,
		Total:         extracted.Total,
		Currency:      extracted.Currency,
		Category:      extracted.Category,
		LineItems:     make([]models.LineItem, 0, len(extracted.LineItems)),
		Status:        models.InvoiceDraft,
		SourceFile:    filename,
		CreatedAt:     e.now(),
	}
	for _, item := range extracted.LineItems {
		inv.LineItems = append(inv.LineItems, models.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return inv, nil
}
