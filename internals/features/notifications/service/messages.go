package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const currency = "KES"

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return "tenant"
}

func money(d decimal.Decimal) string {
	return currency + " " + d.StringFixed(2)
}

func BillIssuedText(tenantName, billingMonth string, total decimal.Decimal, due time.Time) string {
	return fmt.Sprintf("Hi %s, your %s bill is %s, due %s.",
		firstName(tenantName), billingMonth, money(total), due.Format("02 Jan 2006"))
}

func BillReminderText(tenantName, billingMonth string, balance decimal.Decimal, due time.Time) string {
	return fmt.Sprintf("Hi %s, reminder: %s outstanding on your %s bill, due %s.",
		firstName(tenantName), money(balance), billingMonth, due.Format("02 Jan 2006"))
}

func PaymentReceiptText(tenantName, billingMonth string, paid, balance decimal.Decimal) string {
	tail := "Balance: " + money(balance) + "."
	if balance.IsNegative() {
		tail = "Credit: " + money(balance.Neg()) + "."
	} else if balance.IsZero() {
		tail = "Your bill is fully paid."
	}
	return fmt.Sprintf("Hi %s, we received %s for %s. %s",
		firstName(tenantName), money(paid), billingMonth, tail)
}
