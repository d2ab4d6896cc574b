package models

var ExpenseCategories = []string{"Food", "Travel", "Rent", "Shopping", "Health", "Bills", "Entertainment", "Education", "Other"}

var IncomeCategories = []string{"Salary", "Freelance", "Investments", "Gifts", "Other"}

// DefaultCategory is the category preselected for a new entry of the given type.
func DefaultCategory(t TransactionType) string {
	if t == Income {
		return IncomeCategories[0]
	}
	return ExpenseCategories[0]
}

type CategoryCatalog struct {
	Expense      []string      `json:"expense"`
	Income       []string      `json:"income"`
	PaymentModes []PaymentMode `json:"paymentModes"`
	// Defaults maps each transaction type to its preselected category.
	Defaults map[string]string `json:"defaults"`
}

func Catalog() CategoryCatalog {
	return CategoryCatalog{
		Expense:      append([]string(nil), ExpenseCategories...),
		Income:       append([]string(nil), IncomeCategories...),
		PaymentModes: append([]PaymentMode(nil), PaymentModes...),
		Defaults: map[string]string{
			Expense.String(): DefaultCategory(Expense),
			Income.String():  DefaultCategory(Income),
		},
	}
}
