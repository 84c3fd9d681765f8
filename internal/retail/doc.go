// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package retail implements the cleaning recipe for the online retail
// transactions dataset. Each exported transform is a pure function from one
// frame to a new frame and is idempotent on identical input; the step runners
// under modules/ wrap them with snapshot I/O.
//
// Column evolution through the recipe:
//
//	ingest       Customer ID becomes text
//	deduplicate  unique on (Invoice, StockCode, InvoiceDate)
//	impute       no nulls in Description, Customer ID, Country
//	features     + Total Price, DayOfWeek Num, DayOfWeek Name, IsWeekend
//	outliers     Quantity > 0 and Price > 0, + Flag For Review
//	typecast     InvoiceDate timestamp, Quantity int64, Price and Total Price float64
//	textnorm     Description capitalized, Country title case, StockCode upper case
package retail
