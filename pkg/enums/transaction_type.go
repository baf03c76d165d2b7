package enums

// TransactionType classifies an investor capital movement.
type TransactionType string

const (
	TransactionTypeInvest   TransactionType = "invest"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInvest, TransactionTypeWithdraw:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}
