// file: internals/features/school/finance/route/finance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	financeController "schoolku_backend/internals/features/school/finance/controller"
)

func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	feeTypeCtl := &financeController.FeeTypeController{DB: db}
	feeTypes := admin.Group("/fee-types")
	feeTypes.Get("/", feeTypeCtl.List)
	feeTypes.Post("/", feeTypeCtl.Create)
	feeTypes.Put("/:id", feeTypeCtl.Update)
	feeTypes.Delete("/:id", feeTypeCtl.Delete)

	feeGroupCtl := &financeController.FeeGroupController{DB: db}
	feeGroups := admin.Group("/fee-groups")
	feeGroups.Get("/", feeGroupCtl.List)
	feeGroups.Post("/", feeGroupCtl.Create)
	feeGroups.Put("/:id", feeGroupCtl.Update)
	feeGroups.Delete("/:id", feeGroupCtl.Delete)

	feeMasterCtl := &financeController.FeeMasterController{DB: db}
	feeMasters := admin.Group("/fee-masters")
	feeMasters.Get("/", feeMasterCtl.List)
	feeMasters.Post("/", feeMasterCtl.Create)
	feeMasters.Put("/:id", feeMasterCtl.Update)
	feeMasters.Delete("/:id", feeMasterCtl.Delete)

	feePaymentCtl := &financeController.FeePaymentController{DB: db}
	feePayments := admin.Group("/fee-payments")
	feePayments.Get("/dues", feePaymentCtl.Dues)
	feePayments.Get("/", feePaymentCtl.List)
	feePayments.Post("/", feePaymentCtl.Create)
	admin.Get("/finance/summary", feePaymentCtl.Summary)

	incomeCtl := &financeController.IncomeController{DB: db}
	incomes := admin.Group("/incomes")
	incomes.Get("/", incomeCtl.List)
	incomes.Post("/", incomeCtl.Create)
	incomes.Put("/:id", incomeCtl.Update)
	incomes.Delete("/:id", incomeCtl.Delete)

	expenseCtl := &financeController.ExpenseController{DB: db}
	expenses := admin.Group("/expenses")
	expenses.Get("/", expenseCtl.List)
	expenses.Post("/", expenseCtl.Create)
	expenses.Put("/:id", expenseCtl.Update)
	expenses.Delete("/:id", expenseCtl.Delete)
}
