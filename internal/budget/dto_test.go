package budget_test

import (
	"math"

	appErrors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/budget"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func expectInvalidAmount(err error) {
	appErr, ok := appErrors.IsAppError(err)
	Expect(ok).To(BeTrue())
	Expect(appErr.Type).To(Equal(appErrors.ErrorTypeValidation))
	details, ok := appErr.Details.(appErrors.ValidationErrors)
	Expect(ok).To(BeTrue())
	Expect(details.Errors[0].Code).To(Equal(string(appErrors.ErrCodeInvalidAmount)))
}

var _ = Describe("Budget DTOs", func() {
	Describe("amount limits", func() {
		It("should accept the largest amount a column holds", func() {
			Expect(budget.CreateCategoryDTO{Type: "income", PlannedAmount: 999999999999.99}.Validate()).To(Succeed())
			Expect(budget.CreateCategoryDTO{Type: "debt", PlannedAmount: -999999999999.99}.Validate()).To(Succeed())
		})

		It("should reject amounts that would overflow the column", func() {
			expectInvalidAmount(budget.CreateCategoryDTO{Type: "income", PlannedAmount: 1e15}.Validate())
			expectInvalidAmount(budget.CreateCategoryDTO{Type: "income", PlannedAmount: -1e12}.Validate())
			expectInvalidAmount(budget.UpdateCategoryDTO{ActualAmount: ptr(1e12)}.Validate())
			expectInvalidAmount(budget.CreateTransactionDTO{CategoryID: 1, Amount: 2e13}.Validate())
			expectInvalidAmount(budget.UpdateTransactionDTO{Amount: ptr(1e12)}.Validate())
		})

		It("should still reject non-finite amounts", func() {
			expectInvalidAmount(budget.CreateTransactionDTO{CategoryID: 1, Amount: math.Inf(1)}.Validate())
			expectInvalidAmount(budget.UpdateCategoryDTO{PlannedAmount: ptr(math.NaN())}.Validate())
		})

		It("should leave absent patch amounts alone", func() {
			Expect(budget.UpdateCategoryDTO{}.Validate()).To(Succeed())
			Expect(budget.UpdateTransactionDTO{}.Validate()).To(Succeed())
		})
	})

	Describe("Amount", func() {
		It("should round to cents as the database stores them", func() {
			Expect(budget.Amount(12.345).String()).To(Equal("12.35"))
			Expect(budget.Amount(0.004).IsZero()).To(BeTrue())
			Expect(budget.Amount(-7.126).String()).To(Equal("-7.13"))
		})
	})
})
