package payments

import (
	"strings"

	"github.com/ViniMartins/VitrineApp/app/models"
)

// tokenSource says where a provider carries its webhook token or postback
// key in the delivery.
type tokenSource struct {
	header string // lower-cased header name
	field  string // dot-path into the body
	query  string // query parameter name
}

// fieldMap lists candidate dot-paths per normalized purchase field. The
// first non-empty path wins, so schema drift between provider API versions
// degrades gracefully.
type fieldMap struct {
	email       []string
	name        []string
	transaction []string
	product     []string
	price       []string
	status      []string
}

// profile captures everything provider-specific about a webhook delivery.
type profile struct {
	token    tokenSource
	fields   fieldMap
	approved []string
	refunded []string
}

// profiles drives parsing and token extraction for all twelve providers.
// The authentication scheme itself comes from the credentials union, not
// from this table.
var profiles = map[string]profile{
	models.ProviderHotmart: {
		token: tokenSource{header: "x-hotmart-hottok"},
		fields: fieldMap{
			email:       []string{"data.buyer.email"},
			name:        []string{"data.buyer.name"},
			transaction: []string{"data.purchase.transaction"},
			product:     []string{"data.product.id"},
			price:       []string{"data.purchase.price.value"},
			status:      []string{"data.purchase.status", "event"},
		},
		approved: []string{"APPROVED", "COMPLETE", "PURCHASE_APPROVED"},
		refunded: []string{"REFUNDED", "CHARGEBACK", "PURCHASE_REFUNDED"},
	},
	models.ProviderBraip: {
		token: tokenSource{header: "x-braip-token", field: "basic_authentication"},
		fields: fieldMap{
			email:       []string{"client_email"},
			name:        []string{"client_name"},
			transaction: []string{"trans_key"},
			product:     []string{"product_key"},
			price:       []string{"trans_value"},
			status:      []string{"trans_status"},
		},
		approved: []string{"2", "payment_approved"},
		refunded: []string{"5", "refunded", "chargeback"},
	},
	models.ProviderEduzz: {
		token: tokenSource{field: "api_key", query: "api_key"},
		fields: fieldMap{
			email:       []string{"cus_email"},
			name:        []string{"cus_name"},
			transaction: []string{"trans_cod"},
			product:     []string{"product_cod"},
			price:       []string{"trans_value"},
			status:      []string{"trans_status"},
		},
		approved: []string{"3", "paid"},
		refunded: []string{"7", "refunded"},
	},
	models.ProviderMonetizze: {
		token: tokenSource{field: "chave_unica", query: "chave_unica"},
		fields: fieldMap{
			email:       []string{"comprador.email"},
			name:        []string{"comprador.nome"},
			transaction: []string{"venda.codigo"},
			product:     []string{"produto.codigo"},
			price:       []string{"venda.valor"},
			status:      []string{"venda.status"},
		},
		approved: []string{"2", "Finalizada", "Aprovada"},
		refunded: []string{"4", "Devolvida", "Chargeback"},
	},
	models.ProviderKiwify: {
		token: tokenSource{header: "x-kiwify-webhook-token", query: "signature"},
		fields: fieldMap{
			email:       []string{"Customer.email"},
			name:        []string{"Customer.full_name", "Customer.first_name"},
			transaction: []string{"order_id"},
			product:     []string{"Product.product_id"},
			price:       []string{"Commissions.charge_amount"},
			status:      []string{"order_status", "webhook_event_type"},
		},
		approved: []string{"paid", "order_approved"},
		refunded: []string{"refunded", "order_refunded", "chargedback"},
	},
	models.ProviderCakto: {
		token: tokenSource{field: "secret", header: "x-cakto-token"},
		fields: fieldMap{
			email:       []string{"data.customer.email"},
			name:        []string{"data.customer.name"},
			transaction: []string{"data.id"},
			product:     []string{"data.product.id"},
			price:       []string{"data.amount"},
			status:      []string{"data.status", "event"},
		},
		approved: []string{"paid", "purchase_approved"},
		refunded: []string{"refunded", "chargeback"},
	},
	models.ProviderPerfectPay: {
		token: tokenSource{field: "token"},
		fields: fieldMap{
			email:       []string{"customer.email"},
			name:        []string{"customer.full_name"},
			transaction: []string{"code"},
			product:     []string{"product.code"},
			price:       []string{"sale_amount"},
			status:      []string{"sale_status_enum"},
		},
		approved: []string{"2", "approved"},
		refunded: []string{"7", "refunded"},
	},
	models.ProviderTicto: {
		token: tokenSource{field: "token"},
		fields: fieldMap{
			email:       []string{"customer.email"},
			name:        []string{"customer.name"},
			transaction: []string{"order.transaction_hash", "order.hash"},
			product:     []string{"item.product_id"},
			price:       []string{"order.paid_amount"},
			status:      []string{"status"},
		},
		approved: []string{"authorized", "paid"},
		refunded: []string{"refunded", "chargeback"},
	},
	models.ProviderLastlink: {
		token: tokenSource{header: "x-lastlink-token"},
		fields: fieldMap{
			email:       []string{"Data.Buyer.Email"},
			name:        []string{"Data.Buyer.Name"},
			transaction: []string{"Data.Purchase.PaymentId", "Id"},
			product:     []string{"Data.Products.Id", "Data.Offer.Id"},
			price:       []string{"Data.Purchase.Price.Value"},
			status:      []string{"Event"},
		},
		approved: []string{"Purchase_Order_Confirmed", "Recurrent_Payment"},
		refunded: []string{"Payment_Refund", "Payment_Chargeback"},
	},
	models.ProviderPepper: {
		token: tokenSource{header: "x-pepper-token", field: "token"},
		fields: fieldMap{
			email:       []string{"customer.email"},
			name:        []string{"customer.name"},
			transaction: []string{"transaction.id"},
			product:     []string{"product.id"},
			price:       []string{"transaction.amount"},
			status:      []string{"transaction.status"},
		},
		approved: []string{"approved", "paid"},
		refunded: []string{"refunded"},
	},
	models.ProviderKirvano: {
		token: tokenSource{header: "security-token"},
		fields: fieldMap{
			email:       []string{"customer.email"},
			name:        []string{"customer.name"},
			transaction: []string{"sale_id"},
			product:     []string{"products.id", "product.id"},
			price:       []string{"total_price"},
			status:      []string{"event", "status"},
		},
		approved: []string{"SALE_APPROVED", "APPROVED"},
		refunded: []string{"SALE_REFUNDED", "SALE_CHARGEBACK"},
	},
	models.ProviderHubla: {
		token: tokenSource{},
		fields: fieldMap{
			email:       []string{"event.user_email", "event.userEmail"},
			name:        []string{"event.user_name", "event.userName"},
			transaction: []string{"event.id", "id"},
			product:     []string{"event.group_id", "event.groupId"},
			price:       []string{"event.total_value"},
			status:      []string{"type"},
		},
		approved: []string{"invoice.payment_succeeded", "NewSale"},
		refunded: []string{"invoice.refunded", "Refund"},
	},
}

// normalizeStatus folds a raw provider status into approved/refunded/other.
func (p profile) normalizeStatus(raw string) string {
	for _, s := range p.approved {
		if strings.EqualFold(raw, s) {
			return StatusApproved
		}
	}
	for _, s := range p.refunded {
		if strings.EqualFold(raw, s) {
			return StatusRefunded
		}
	}
	return StatusOther
}

// extractToken pulls the provider's token/key from the delivery.
func (p profile) extractToken(wh Webhook, payload map[string]interface{}) string {
	if p.token.header != "" {
		if v := wh.Header(p.token.header); v != "" {
			return v
		}
	}
	if p.token.field != "" {
		if v := dig(payload, p.token.field); v != "" {
			return v
		}
	}
	if p.token.query != "" && wh.Query != nil {
		if v := wh.Query[p.token.query]; v != "" {
			return v
		}
	}
	return ""
}
