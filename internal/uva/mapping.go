package uva

import (
	"github.com/shopspring/decimal"

	"uvaexpress/pkg/models"
)

// kzTarget points at the base/tax pair of one Kennzahl inside a KZValues
// struct, so the decision table can accumulate without reflection.
type kzTarget struct {
	code  string
	netto *decimal.Decimal
	ust   *decimal.Decimal
}

// rateTarget maps a VAT rate to its taxable-turnover Kennzahl
// (Abschnitt 1). 5% is historical and reported under KZ007; unknown rates
// cannot occur past the boundary but default to the standard rate field,
// matching the form's instructions.
func rateTarget(kz *models.KZValues, rate int) kzTarget {
	switch rate {
	case 20:
		return kzTarget{"KZ022", &kz.KZ022Netto, &kz.KZ022USt}
	case 10:
		return kzTarget{"KZ029", &kz.KZ029Netto, &kz.KZ029USt}
	case 13:
		return kzTarget{"KZ006", &kz.KZ006Netto, &kz.KZ006USt}
	case 19:
		return kzTarget{"KZ037", &kz.KZ037Netto, &kz.KZ037USt}
	case 7, 5:
		return kzTarget{"KZ007", &kz.KZ007Netto, &kz.KZ007USt}
	default:
		return kzTarget{"KZ022", &kz.KZ022Netto, &kz.KZ022USt}
	}
}

// igRateTarget maps a VAT rate to its intra-community acquisition
// Kennzahl (Abschnitt 5).
func igRateTarget(kz *models.KZValues, rate int) kzTarget {
	switch rate {
	case 20:
		return kzTarget{"KZ072", &kz.KZ072Netto, &kz.KZ072USt}
	case 10:
		return kzTarget{"KZ073", &kz.KZ073Netto, &kz.KZ073USt}
	case 13:
		return kzTarget{"KZ008", &kz.KZ008Netto, &kz.KZ008USt}
	case 19:
		return kzTarget{"KZ088", &kz.KZ088Netto, &kz.KZ088USt}
	default:
		return kzTarget{"KZ072", &kz.KZ072Netto, &kz.KZ072USt}
	}
}

// rcTarget maps a reverse-charge treatment to its liability Kennzahl
// (Abschnitt 4) and the mirrored input-tax Kennzahl (Abschnitt 6). The
// caller guarantees t.IsReverseCharge().
func rcTarget(kz *models.KZValues, t models.TaxTreatment) (schuld kzTarget, vorsteuer kzTarget) {
	switch t {
	case models.TreatmentReverseCharge191, models.TreatmentReverseCharge19134:
		return kzTarget{code: "KZ057", ust: &kz.KZ057USt},
			kzTarget{code: "KZ066", ust: &kz.KZ066Vorsteuer}
	case models.TreatmentReverseCharge191A: // Bauleistungen
		return kzTarget{code: "KZ048", ust: &kz.KZ048USt},
			kzTarget{code: "KZ082", ust: &kz.KZ082Vorsteuer}
	case models.TreatmentReverseCharge191B: // Sicherungseigentum
		return kzTarget{code: "KZ044", ust: &kz.KZ044USt},
			kzTarget{code: "KZ087", ust: &kz.KZ087Vorsteuer}
	case models.TreatmentReverseCharge191D: // Schrott, Metalle
		return kzTarget{code: "KZ032", ust: &kz.KZ032USt},
			kzTarget{code: "KZ089", ust: &kz.KZ089Vorsteuer}
	default:
		panic("uva: rcTarget called with non-reverse-charge treatment " + string(t))
	}
}
