package domain

import (
	"net/url"
	"strconv"
	"time"
)

// vnpSuccess is the gateway code for an approved payment.
const vnpSuccess = "00"

// vnpDateLayout is the gateway's yyyyMMddHHmmss timestamp format.
const vnpDateLayout = "20060102150405"

// PaymentReturn is the result the payment gateway encodes in the return URL.
type PaymentReturn struct {
	TxnRef            string     `json:"txnRef"`
	Amount            float64    `json:"amount"`
	BankCode          string     `json:"bankCode,omitempty"`
	BankTranNo        string     `json:"bankTranNo,omitempty"`
	CardType          string     `json:"cardType,omitempty"`
	OrderInfo         string     `json:"orderInfo,omitempty"`
	PayDate           *time.Time `json:"payDate,omitempty"`
	ResponseCode      string     `json:"responseCode"`
	TransactionStatus string     `json:"transactionStatus"`
	Success           bool       `json:"success"`
}

// ParsePaymentReturn reads the vnp_* fields of the return query string.
// The payment succeeded only when both the response code and the
// transaction status are "00". Unparseable amounts and dates are left zero.
func ParsePaymentReturn(q url.Values) PaymentReturn {
	r := PaymentReturn{
		TxnRef:            q.Get("vnp_TxnRef"),
		BankCode:          q.Get("vnp_BankCode"),
		BankTranNo:        q.Get("vnp_BankTranNo"),
		CardType:          q.Get("vnp_CardType"),
		OrderInfo:         q.Get("vnp_OrderInfo"),
		ResponseCode:      q.Get("vnp_ResponseCode"),
		TransactionStatus: q.Get("vnp_TransactionStatus"),
	}
	r.Success = r.ResponseCode == vnpSuccess && r.TransactionStatus == vnpSuccess

	// The gateway sends amounts multiplied by 100.
	if raw := q.Get("vnp_Amount"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			r.Amount = n / 100
		}
	}
	if raw := q.Get("vnp_PayDate"); raw != "" {
		if t, err := time.ParseInLocation(vnpDateLayout, raw, time.UTC); err == nil {
			r.PayDate = &t
		}
	}
	return r
}
