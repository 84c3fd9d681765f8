// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package retail

// Source columns of the online retail CSV.
const (
	ColInvoice     = "Invoice"
	ColStockCode   = "StockCode"
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColInvoiceDate = "InvoiceDate"
	ColPrice       = "Price"
	ColCustomerID  = "Customer ID"
	ColCountry     = "Country"
)

// Derived columns, appended by later steps.
const (
	ColTotalPrice    = "Total Price"
	ColDayOfWeekNum  = "DayOfWeek Num"
	ColDayOfWeekName = "DayOfWeek Name"
	ColIsWeekend     = "IsWeekend"
	ColFlagForReview = "Flag For Review"
)

// DuplicateKey is the column subset that identifies one line item.
var DuplicateKey = []string{ColInvoice, ColStockCode, ColInvoiceDate}

// DefaultFills are the values substituted for missing cells by Impute.
var DefaultFills = map[string]string{
	ColDescription: "Unknown",
	ColCustomerID:  "0",
	ColCountry:     "Unknown",
}

// DefaultReviewThreshold is the line total above which a row is flagged.
const DefaultReviewThreshold = 1000.0
