package report

var productColumns = []string{
	"productid", "name", "description", "price", "stockquantity",
	"expirydate", "reorderlevel", "categoryid", "supplierid",
}

var definitions = []Definition{
	{
		Name:        "get_products",
		Description: "All products",
		Kind:        Table,
		Table:       "product",
		Columns:     productColumns,
	},
	{
		Name:        "get_instock_products",
		Description: "Products with stock on hand",
		Kind:        Query,
		SQL:         `SELECT * FROM product WHERE stockquantity > 0`,
	},
	{
		Name:        "get_products_by_category",
		Description: "Products ordered by category",
		Kind:        Query,
		SQL:         `SELECT * FROM product ORDER BY categoryid`,
	},
	{
		Name:        "get_all_sales",
		Description: "All sales invoices ordered by customer",
		Kind:        Query,
		SQL:         `SELECT * FROM salesinvoice ORDER BY customerid`,
	},
	{
		Name:        "get_all_sales_today",
		Description: "Sales invoices issued on one day",
		Kind:        Query,
		SQL:         `SELECT * FROM salesinvoice WHERE invoicedate = $1`,
		Window:      Window{Kind: Day, Default: onDay},
	},
	{
		Name:        "product_highest_sales_week",
		Description: "Product revenue ranked over a date range, the last seven days unless from/to widen it",
		Kind:        Query,
		SQL: `SELECT product.productid, product.name, sum(salesdetail.linetotal)
FROM product
JOIN salesdetail ON salesdetail.productid = product.productid
JOIN salesinvoice ON salesinvoice.invoiceid = salesdetail.invoiceid
WHERE salesinvoice.invoicedate BETWEEN $1 AND $2
GROUP BY product.productid
ORDER BY sum(salesdetail.linetotal) DESC`,
		Window: Window{Kind: Range, Default: lastWeek},
	},
	{
		Name:        "product_highest_sales_5",
		Description: "Top five products by quantity sold",
		Kind:        Query,
		SQL: `SELECT product.productid AS id, product.name, product.categoryid AS category, supplierid AS sid, sum(quantity)
FROM product
JOIN salesdetail ON product.productid = salesdetail.productid
GROUP BY product.productid
ORDER BY sum(quantity) DESC
LIMIT 5`,
	},
	{
		Name:        "sales_return",
		Description: "Returned items",
		Kind:        Query,
		SQL:         `SELECT * FROM returns ORDER BY returnid`,
	},
	{
		Name:        "list_employees",
		Description: "All employees",
		Kind:        Query,
		SQL:         `SELECT * FROM employee ORDER BY employeeid`,
	},
	{
		Name:        "best_employees",
		Description: "Employees ranked by revenue",
		Kind:        Query,
		SQL: `SELECT employee.employeeid, employee.name, count(invoiceid) AS sales_made, sum(totalamount)
FROM salesinvoice
JOIN employee ON employee.employeeid = salesinvoice.employeeid
GROUP BY employee.employeeid
ORDER BY sum(totalamount) DESC`,
	},
	{
		Name:        "best_employee_today",
		Description: "Invoices per employee on one day",
		Kind:        Query,
		SQL: `SELECT employeeid, count(invoiceid)
FROM salesinvoice
WHERE invoicedate = $1
GROUP BY employeeid
ORDER BY count(invoiceid) DESC`,
		Window: Window{Kind: Day, Default: onDay},
	},
	{
		Name:        "list_customers",
		Description: "All customers",
		Kind:        Query,
		SQL:         `SELECT * FROM customer ORDER BY customerid`,
	},
	{
		Name:        "list_customers_expenditure",
		Description: "Purchases and spend per customer",
		Kind:        Query,
		SQL: `SELECT customer.customerid, customer.name, count(invoiceid) AS totalpurchases, sum(totalamount) AS totalspent
FROM customer
JOIN salesinvoice ON customer.customerid = salesinvoice.customerid
GROUP BY customer.customerid
ORDER BY sum(totalamount) DESC`,
	},
	{
		Name:        "list_customers_expenditure_6",
		Description: "Top five customers by spend over six months",
		Kind:        Query,
		SQL: `SELECT customer.customerid, customer.name, count(invoiceid) AS totalpurchases, sum(totalamount) AS totalspent
FROM customer
JOIN salesinvoice ON customer.customerid = salesinvoice.customerid
WHERE invoicedate BETWEEN $1 AND $2
GROUP BY customer.customerid
ORDER BY sum(totalamount) DESC
LIMIT 5`,
		Window: Window{Kind: Range, Default: lastSixMonths},
	},
	{
		Name:        "inventory_spend_month",
		Description: "Purchase order spend for the month",
		Kind:        Query,
		SQL:         `SELECT sum(totalamount) FROM purchaseorder WHERE orderdate BETWEEN $1 AND $2`,
		Window:      Window{Kind: Range, Default: currentMonth},
	},
	{
		Name:        "revenue_last_month",
		Description: "Sales revenue for the previous month",
		Kind:        Query,
		SQL:         `SELECT sum(totalamount) AS totalrevenue FROM salesinvoice WHERE invoicedate BETWEEN $1 AND $2`,
		Window:      Window{Kind: Range, Default: previousMonth},
	},
	{
		Name:        "highest_purchase",
		Description: "Purchase orders by amount",
		Kind:        Query,
		SQL:         `SELECT * FROM purchaseorder ORDER BY totalamount DESC`,
	},
	{
		Name:        "transactionlog",
		Description: "Stock transaction log",
		Kind:        Query,
		SQL:         `SELECT * FROM transactionlog ORDER BY logid`,
	},
	{
		Name:        "feedback",
		Description: "Customer feedback",
		Kind:        Query,
		SQL:         `SELECT * FROM feedback ORDER BY feedbackid`,
	},
	{
		Name:        "complaints",
		Description: "Customer complaints",
		Kind:        Query,
		SQL:         `SELECT * FROM complaints ORDER BY complaintid`,
	},
	{
		Name:        "list_vendors",
		Description: "All vendors",
		Kind:        Query,
		SQL:         `SELECT * FROM supplier ORDER BY supplierid`,
	},
	{
		Name:        "list_unique_vendors",
		Description: "Top three vendors by distinct products sold",
		Kind:        Query,
		SQL: `SELECT s.supplierid, s.name, COUNT(DISTINCT p.productid) AS uniqueproductssold
FROM supplier s
JOIN product p ON s.supplierid = p.supplierid
WHERE p.productid IN (
    SELECT DISTINCT sd.productid
    FROM salesdetail sd
    JOIN salesinvoice si ON si.invoiceid = sd.invoiceid
    WHERE si.invoicedate >= $1
)
GROUP BY s.supplierid, s.name
ORDER BY uniqueproductssold DESC
LIMIT 3`,
		Window: Window{Kind: Since, Default: lastYear},
	},
}

var byName = func() map[string]Definition {
	m := make(map[string]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Name] = d
	}
	return m
}()

// Definitions returns every registered report in registration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a report by route name.
func Lookup(name string) (Definition, bool) {
	d, ok := byName[name]
	return d, ok
}
