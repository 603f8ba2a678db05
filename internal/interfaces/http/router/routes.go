package router

import (
	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/interfaces/http/handler"
)

// Handlers are the endpoint sets mounted under /api
type Handlers struct {
	Sales     *handler.SalesHandler
	Bills     *handler.BillHandler
	Customers *handler.CustomerHandler
	Products  *handler.ProductHandler
	Lookup    *handler.LookupHandler
	Account   *handler.AccountHandler
}

// APIGroups builds the route table. loginGuard runs in front of the login
// endpoint only and may be nil.
func APIGroups(h Handlers, loginGuard gin.HandlerFunc) []RouteRegistrar {
	sales := NewDomainGroup("sales", "/sales").
		POST("", h.Sales.Create).
		GET("", h.Sales.List).
		GET("/byId/:saleId", h.Sales.GetItems).
		PUT("/bill-status/reset/:saleId", h.Sales.ResetBillStatus).
		PUT("/:saleId", h.Sales.Update).
		DELETE("/:saleId/products/:productId", h.Sales.DeleteItem)

	bills := NewDomainGroup("bills", "/bills").
		POST("", h.Bills.Create).
		GET("", h.Bills.List).
		GET("/by-customer/:customerId", h.Bills.ListByCustomer).
		GET("/with-sales", h.Bills.ListWithSales).
		GET("/:billId/sales-ids", h.Bills.SalesIDs).
		PUT("/:billId/receive", h.Bills.Receive).
		PUT("/:billId/settle", h.Bills.Settle).
		PUT("/:billId/rollback", h.Bills.Rollback).
		DELETE("/by-sale/:saleId", h.Bills.DeleteBySale)

	customers := NewDomainGroup("customers", "/customers").
		POST("/add", h.Customers.Create).
		GET("", h.Customers.List).
		GET("/check-duplicate", h.Customers.CheckDuplicate).
		GET("/top-products", h.Sales.TopProducts).
		GET("/:id", h.Customers.GetByID).
		PUT("/:id", h.Customers.Update).
		DELETE("/:id", h.Customers.Delete)

	products := NewDomainGroup("products", "/products").
		POST("/add", h.Products.Create).
		GET("", h.Products.List).
		GET("/list", h.Products.ListSummaries).
		GET("/check-duplicate", h.Products.CheckDuplicate).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete)

	lookup := NewDomainGroup("lookup", "/lookup").
		GET("/bootstrap", h.Lookup.Bootstrap).
		POST("/refresh", h.Lookup.Refresh)

	login := []gin.HandlerFunc{h.Account.Login}
	if loginGuard != nil {
		login = append([]gin.HandlerFunc{loginGuard}, login...)
	}
	account := NewDomainGroup("account", "/account").
		POST("/register", h.Account.Register).
		POST("/login", login...)

	menus := NewDomainGroup("menus", "/menus").
		GET("", h.Account.Menus).
		GET("/:menuCode", h.Account.Menu)

	return []RouteRegistrar{sales, bills, customers, products, lookup, account, menus}
}
