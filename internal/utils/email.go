package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"leafy_back_end/internal/models"
	"leafy_back_end/internal/pricing"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@leafy.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_leafy.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order *models.Order) string {
	itemsHTML := ""
	for _, item := range order.OrderItems {
		lineTotal := item.UnitPriceCents * int64(item.Quantity)
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s (%s / %s)</td>
				<td>%d</td>
				<td>%s€</td>
				<td>%s€</td>
			</tr>`, item.Name, item.Size, item.Color, item.Quantity,
			pricing.FormatCents(item.UnitPriceCents), pricing.FormatCents(lineTotal))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #2d5a27;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a été enregistrée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Sous-total :</td>
					<td style="padding: 10px;">%s€</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Livraison :</td>
					<td style="padding: 10px;">%s€</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">TVA :</td>
					<td style="padding: 10px;">%s€</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total :</td>
					<td style="padding: 10px; font-weight: bold;">%s€</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Leafy</strong>
		</p>
	</div>
</body>
</html>`, order.ID, itemsHTML,
		pricing.FormatCents(order.ItemsPriceCents),
		pricing.FormatCents(order.ShippingCents),
		pricing.FormatCents(order.TaxCents),
		pricing.FormatCents(order.TotalCents))
}
