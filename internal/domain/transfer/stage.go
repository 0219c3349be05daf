package domain_transfer

// Stage is the position of a transfer attempt inside the orchestration state
// machine. Terminal stages are immutable once reached.
type Stage string

const (
	StageValidated Stage = "VALIDATED"
	StageBegun     Stage = "BEGUN"
	StageDebited   Stage = "DEBITED"
	StageCredited  Stage = "CREDITED"
	StageCompleted Stage = "COMPLETED"

	StageDebitFailed             Stage = "DEBIT_FAILED"
	StageCreditFailedCompensated Stage = "CREDIT_FAILED_COMPENSATED"
)

func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageDebitFailed || s == StageCreditFailedCompensated
}
