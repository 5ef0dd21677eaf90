package verify

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/cmos-collections/callcore/agent/contract"
	statex "github.com/cmos-collections/callcore/agent/state"
)

const (
	// Name match bands. A ratio in [similar, verified) is close enough to
	// suspect a mis-hearing but is explicitly not a pass.
	nameVerifiedThreshold = 0.90
	nameSimilarThreshold  = 0.60

	// Addresses allow more flexibility than names.
	addressVerifiedThreshold = 0.70
)

// Eircode-shaped token: one letter, two digits, optional space, four
// alphanumerics. Stripped before address comparison.
var eircodePattern = regexp.MustCompile(`\b[a-z]\d{2}\s*[a-z0-9]{4}\b`)

var (
	addressPunctPattern = regexp.MustCompile(`[,.]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// Engine compares stated identity answers against the session's loaded
// account record and grows the verification tally. It never blocks anything
// itself; the transaction coordinator independently re-checks the tally
// before disclosure or payment.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// VerifyDateOfBirth normalizes the stated date and requires an exact match
// with the on-file canonical date.
func (e *Engine) VerifyDateOfBirth(s *statex.CallSession, stated string) contractx.VerificationResult {
	if s == nil || s.Account == nil {
		return noAccount(contractx.FactorDateOfBirth)
	}

	normalized := NormalizeDate(stated)
	log.Debug().
		Str("stated", stated).
		Str("normalized", normalized).
		Str("on_file", s.Account.DateOfBirth).
		Msg("dob comparison")

	if normalized != s.Account.DateOfBirth {
		return failed(contractx.FactorDateOfBirth)
	}
	s.GrantFactor(contractx.FactorDateOfBirth)
	return verified(contractx.FactorDateOfBirth)
}

// VerifyName accepts a close fuzzy match and reports a middle band as
// similar, returning the on-file name so the caller can be asked to retry.
func (e *Engine) VerifyName(s *statex.CallSession, stated string) contractx.VerificationResult {
	if s == nil || s.Account == nil {
		return noAccount(contractx.FactorName)
	}

	ratio := Similarity(stated, s.Account.DebtorName)
	log.Debug().
		Str("stated", stated).
		Float64("ratio", ratio).
		Msg("name comparison")

	switch {
	case ratio >= nameVerifiedThreshold:
		s.GrantFactor(contractx.FactorName)
		return verified(contractx.FactorName)
	case ratio >= nameSimilarThreshold:
		return contractx.VerificationResult{
			Factor:  contractx.FactorName,
			Outcome: contractx.OutcomeSimilar,
			OnFile:  s.Account.DebtorName,
		}
	default:
		return failed(contractx.FactorName)
	}
}

// VerifyAddress strips postal codes and punctuation from both sides, accepts
// a substring match in either direction (covers partial answers like
// "89 Elm Row, Galway"), and otherwise falls back to fuzzy similarity.
func (e *Engine) VerifyAddress(s *statex.CallSession, stated string) contractx.VerificationResult {
	if s == nil || s.Account == nil {
		return noAccount(contractx.FactorAddress)
	}

	normStated := normalizeAddress(stated)
	normOnFile := normalizeAddress(s.Account.DebtorAddress)

	if normStated != "" && normOnFile != "" &&
		(strings.Contains(normOnFile, normStated) || strings.Contains(normStated, normOnFile)) {
		log.Debug().Str("stated", normStated).Msg("address substring match")
		s.GrantFactor(contractx.FactorAddress)
		return verified(contractx.FactorAddress)
	}

	ratio := Similarity(normStated, normOnFile)
	log.Debug().
		Str("stated", normStated).
		Float64("ratio", ratio).
		Msg("address comparison")

	if ratio >= addressVerifiedThreshold {
		s.GrantFactor(contractx.FactorAddress)
		return verified(contractx.FactorAddress)
	}
	return failed(contractx.FactorAddress)
}

// normalizeAddress lowercases, strips Eircode-shaped tokens and
// comma/period punctuation, and collapses whitespace.
func normalizeAddress(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	addr = eircodePattern.ReplaceAllString(addr, "")
	addr = addressPunctPattern.ReplaceAllString(addr, "")
	addr = whitespacePattern.ReplaceAllString(addr, " ")
	return strings.TrimSpace(addr)
}

func verified(f contractx.Factor) contractx.VerificationResult {
	return contractx.VerificationResult{Factor: f, Outcome: contractx.OutcomeVerified}
}

func failed(f contractx.Factor) contractx.VerificationResult {
	return contractx.VerificationResult{Factor: f, Outcome: contractx.OutcomeFailed}
}

func noAccount(f contractx.Factor) contractx.VerificationResult {
	return contractx.VerificationResult{Factor: f, Outcome: contractx.OutcomeNoAccountLoaded}
}
