package sqlconfig

// Table names shared by the storage readers and writers.
const (
	UsersTable        = "users"
	CategoriesTable   = "categories"
	TransactionsTable = "transactions"
)

// Column widths in characters, matching the VARCHAR sizes in the migrations.
const (
	UsernameMaxLength     = 80
	EmailMaxLength        = 120
	CategoryNameMaxLength = 100
	DescriptionMaxLength  = 200
)

// TransactionType mirrors the CHECK constraint on transactions.type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)
