package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"leafy_back_end/internal/models"
	"leafy_back_end/internal/pricing"
)

// GenerateOrderTrackingQR génère le QR de suivi de commande en base64,
// prêt à mettre dans <img src="...">.
func GenerateOrderTrackingQR(orderID string) (string, error) {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	png, err := qrcode.Encode(baseURL+"/orders/"+orderID, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF rend la facture HTML en PDF via Chrome headless.
func GenerateInvoicePDF(order *models.Order) ([]byte, error) {
	qr, err := GenerateOrderTrackingQR(order.ID)
	if err != nil {
		return nil, fmt.Errorf("qr facture: %w", err)
	}

	html := invoiceHTML(order, qr)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("rendu PDF: %w", err)
	}

	return pdfBuf, nil
}

func invoiceHTML(order *models.Order, qrDataURL string) string {
	itemsHTML := ""
	for _, item := range order.OrderItems {
		lineTotal := item.UnitPriceCents * int64(item.Quantity)
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td><td>%s / %s</td><td>%d</td><td>%s€</td><td>%s€</td>
			</tr>`, item.Name, item.Size, item.Color, item.Quantity,
			pricing.FormatCents(item.UnitPriceCents), pricing.FormatCents(lineTotal))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Facture %s</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1 style="color: #2d5a27;">Leafy — Facture</h1>
	<p>Commande <strong>%s</strong> du %s</p>
	<p>%s<br>%s, %s %s<br>%s</p>
	<table style="width: 100%%; border-collapse: collapse;" border="1" cellpadding="8">
		<thead>
			<tr><th>Produit</th><th>Variante</th><th>Qté</th><th>Prix unitaire</th><th>Total</th></tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p style="text-align: right;">
		Sous-total : %s€<br>
		Livraison : %s€<br>
		TVA : %s€<br>
		<strong>Total : %s€</strong>
	</p>
	<img src="%s" alt="Suivi de commande" width="128" height="128">
	<p style="color: #777; font-size: 12px;">Scannez pour suivre votre commande.</p>
</body>
</html>`,
		order.ID, order.ID, order.CreatedAt.Format("02/01/2006"),
		order.ShippingAddress.FullName, order.ShippingAddress.Street,
		order.ShippingAddress.PostalCode, order.ShippingAddress.City,
		order.ShippingAddress.Country,
		itemsHTML,
		pricing.FormatCents(order.ItemsPriceCents),
		pricing.FormatCents(order.ShippingCents),
		pricing.FormatCents(order.TaxCents),
		pricing.FormatCents(order.TotalCents),
		qrDataURL)
}
