// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

// RetailCSV is a small online retail export. It holds one exact duplicate
// line item, missing descriptions, customers and countries, one negative
// quantity, one zero price and one line total above 1000.
const RetailCSV = `Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country
489434,85048,"  15CM CHRISTMAS GLASS BALL 20 LIGHTS ",12,2009-12-01 07:45:00,6.95,13085.0,united kingdom
489434,85048,"  15CM CHRISTMAS GLASS BALL 20 LIGHTS ",12,2009-12-01 07:45:00,6.95,13085.0,united kingdom
489434,79323p,pink cherry lights,12,2009-12-01 07:45:00,6.75,13085.0,United Kingdom
489435,22350,,-3,2009-12-01 07:46:00,2.55,,
489436,21523,DOORMAT fancy,200,2009-12-05 09:00:00,7.50,13078.0,
C489449,22087,paper bunting,1,2009-12-01 10:33:00,0,16321.0,Australia
`
