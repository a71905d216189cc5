package models

import "github.com/shopspring/decimal"

// KZValues holds every Kennzahl of the official U30 form (2026). Field
// values are only ever produced by the accumulation engine's decision
// table; the JSON names are the stable external contract.
type KZValues struct {
	// Kopfdaten
	KZ000Netto decimal.Decimal `json:"kz000_netto"` // Gesamtbetrag Lieferungen/Leistungen
	KZ001Netto decimal.Decimal `json:"kz001_netto"` // Eigenverbrauch
	KZ021Netto decimal.Decimal `json:"kz021_netto"` // Abzüglich RC-Umsätze

	// Abschnitt 1: Steuerpflichtige Umsätze (Bemessungsgrundlage + USt)
	KZ022Netto decimal.Decimal `json:"kz022_netto"` // 20% Normalsteuersatz
	KZ022USt   decimal.Decimal `json:"kz022_ust"`
	KZ029Netto decimal.Decimal `json:"kz029_netto"` // 10% ermäßigt
	KZ029USt   decimal.Decimal `json:"kz029_ust"`
	KZ006Netto decimal.Decimal `json:"kz006_netto"` // 13% ermäßigt
	KZ006USt   decimal.Decimal `json:"kz006_ust"`
	KZ037Netto decimal.Decimal `json:"kz037_netto"` // 19% Jungholz/Mittelberg
	KZ037USt   decimal.Decimal `json:"kz037_ust"`
	KZ052Netto decimal.Decimal `json:"kz052_netto"` // 10% Zusatzsteuer pauschaliert
	KZ052USt   decimal.Decimal `json:"kz052_ust"`
	KZ007Netto decimal.Decimal `json:"kz007_netto"` // 7% Zusatzsteuer land-/forstwirtsch.
	KZ007USt   decimal.Decimal `json:"kz007_ust"`

	// Abschnitt 2: Steuerfreie Umsätze MIT Vorsteuerabzug
	KZ011Netto decimal.Decimal `json:"kz011_netto"` // Ausfuhrlieferungen
	KZ012Netto decimal.Decimal `json:"kz012_netto"` // Lohnveredelung
	KZ015Netto decimal.Decimal `json:"kz015_netto"` // Seeschifffahrt, Luftfahrt, Diplomaten
	KZ017Netto decimal.Decimal `json:"kz017_netto"` // IG Lieferungen
	KZ018Netto decimal.Decimal `json:"kz018_netto"` // Fahrzeuglieferungen ohne UID

	// Abschnitt 3: Steuerfreie Umsätze OHNE Vorsteuerabzug
	KZ019Netto decimal.Decimal `json:"kz019_netto"` // Grundstücksumsätze
	KZ016Netto decimal.Decimal `json:"kz016_netto"` // Kleinunternehmer
	KZ020Netto decimal.Decimal `json:"kz020_netto"` // Übrige steuerfreie Umsätze

	// Abschnitt 4: Steuerschuld kraft Rechnungslegung / Reverse Charge
	KZ056USt decimal.Decimal `json:"kz056_ust"`
	KZ057USt decimal.Decimal `json:"kz057_ust"` // §19 Abs1 2.Satz
	KZ048USt decimal.Decimal `json:"kz048_ust"` // §19 Abs1a Bauleistungen
	KZ044USt decimal.Decimal `json:"kz044_ust"` // §19 Abs1b Sicherungseigentum
	KZ032USt decimal.Decimal `json:"kz032_ust"` // §19 Abs1d Schrott, Metalle

	// Abschnitt 5: Innergemeinschaftliche Erwerbe
	KZ070Netto decimal.Decimal `json:"kz070_netto"` // Gesamtbetrag IG Erwerbe
	KZ071Netto decimal.Decimal `json:"kz071_netto"` // Steuerfrei Art6 Abs2
	KZ072Netto decimal.Decimal `json:"kz072_netto"` // 20% IG Erwerbe
	KZ072USt   decimal.Decimal `json:"kz072_ust"`
	KZ073Netto decimal.Decimal `json:"kz073_netto"` // 10% IG Erwerbe
	KZ073USt   decimal.Decimal `json:"kz073_ust"`
	KZ008Netto decimal.Decimal `json:"kz008_netto"` // 13% IG Erwerbe
	KZ008USt   decimal.Decimal `json:"kz008_ust"`
	KZ088Netto decimal.Decimal `json:"kz088_netto"` // 19% IG Erwerbe
	KZ088USt   decimal.Decimal `json:"kz088_ust"`
	KZ076Netto decimal.Decimal `json:"kz076_netto"` // Nicht zu versteuern Art3 Abs8
	KZ077Netto decimal.Decimal `json:"kz077_netto"`

	// Abschnitt 6: Abziehbare Vorsteuer
	KZ060Vorsteuer decimal.Decimal `json:"kz060_vorsteuer"` // inländische Vorsteuern
	KZ061Vorsteuer decimal.Decimal `json:"kz061_vorsteuer"` // EUSt entrichtet
	KZ083Vorsteuer decimal.Decimal `json:"kz083_vorsteuer"` // EUSt Abgabenkonto
	KZ065Vorsteuer decimal.Decimal `json:"kz065_vorsteuer"` // Vorsteuern IG Erwerbe
	KZ066Vorsteuer decimal.Decimal `json:"kz066_vorsteuer"` // Vorsteuern §19 Abs1
	KZ082Vorsteuer decimal.Decimal `json:"kz082_vorsteuer"` // Vorsteuern §19 Abs1a
	KZ087Vorsteuer decimal.Decimal `json:"kz087_vorsteuer"` // Vorsteuern §19 Abs1b
	KZ089Vorsteuer decimal.Decimal `json:"kz089_vorsteuer"` // Vorsteuern §19 Abs1d
	KZ064Vorsteuer decimal.Decimal `json:"kz064_vorsteuer"` // Vorsteuern IG Fahrzeuge
	KZ062Vorsteuer decimal.Decimal `json:"kz062_vorsteuer"` // Nicht abzugsfähig
	KZ063Vorsteuer decimal.Decimal `json:"kz063_vorsteuer"` // Berichtigung §12 Abs10,11
	KZ067Vorsteuer decimal.Decimal `json:"kz067_vorsteuer"` // Berichtigung §16

	// Ergebnis
	KZ090Betrag decimal.Decimal `json:"kz090_betrag"` // Gesamtbetrag abziehbare Vorsteuer
	KZ095Betrag decimal.Decimal `json:"kz095_betrag"` // Vorauszahlung/Überschuss
}

// SumUSt totals the output VAT of the taxable turnover section.
func (kz *KZValues) SumUSt() decimal.Decimal {
	return Round2(kz.KZ022USt.
		Add(kz.KZ029USt).
		Add(kz.KZ006USt).
		Add(kz.KZ037USt).
		Add(kz.KZ052USt).
		Add(kz.KZ007USt))
}

// SumSteuerschuld totals the reverse-charge tax liability section.
func (kz *KZValues) SumSteuerschuld() decimal.Decimal {
	return Round2(kz.KZ056USt.
		Add(kz.KZ057USt).
		Add(kz.KZ048USt).
		Add(kz.KZ044USt).
		Add(kz.KZ032USt))
}

// SumIGErwerbUSt totals the acquisition tax of the intra-community section.
func (kz *KZValues) SumIGErwerbUSt() decimal.Decimal {
	return Round2(kz.KZ072USt.
		Add(kz.KZ073USt).
		Add(kz.KZ008USt).
		Add(kz.KZ088USt))
}

// SumVorsteuer totals the deductible input tax. KZ062 (non-deductible) is
// subtracted as an absolute value exactly once, here: the field stores the
// raw input whatever its sign.
func (kz *KZValues) SumVorsteuer() decimal.Decimal {
	return Round2(kz.KZ060Vorsteuer.
		Add(kz.KZ061Vorsteuer).
		Add(kz.KZ083Vorsteuer).
		Add(kz.KZ065Vorsteuer).
		Add(kz.KZ066Vorsteuer).
		Add(kz.KZ082Vorsteuer).
		Add(kz.KZ087Vorsteuer).
		Add(kz.KZ089Vorsteuer).
		Add(kz.KZ064Vorsteuer).
		Sub(kz.KZ062Vorsteuer.Abs()).
		Add(kz.KZ063Vorsteuer).
		Add(kz.KZ067Vorsteuer))
}

// AllZero reports whether every Kennzahl except the result fields KZ090
// and KZ095 is zero (a nil declaration).
func (kz *KZValues) AllZero() bool {
	fields := []decimal.Decimal{
		kz.KZ000Netto, kz.KZ001Netto, kz.KZ021Netto,
		kz.KZ022Netto, kz.KZ022USt, kz.KZ029Netto, kz.KZ029USt,
		kz.KZ006Netto, kz.KZ006USt, kz.KZ037Netto, kz.KZ037USt,
		kz.KZ052Netto, kz.KZ052USt, kz.KZ007Netto, kz.KZ007USt,
		kz.KZ011Netto, kz.KZ012Netto, kz.KZ015Netto, kz.KZ017Netto, kz.KZ018Netto,
		kz.KZ019Netto, kz.KZ016Netto, kz.KZ020Netto,
		kz.KZ056USt, kz.KZ057USt, kz.KZ048USt, kz.KZ044USt, kz.KZ032USt,
		kz.KZ070Netto, kz.KZ071Netto,
		kz.KZ072Netto, kz.KZ072USt, kz.KZ073Netto, kz.KZ073USt,
		kz.KZ008Netto, kz.KZ008USt, kz.KZ088Netto, kz.KZ088USt,
		kz.KZ076Netto, kz.KZ077Netto,
		kz.KZ060Vorsteuer, kz.KZ061Vorsteuer, kz.KZ083Vorsteuer,
		kz.KZ065Vorsteuer, kz.KZ066Vorsteuer, kz.KZ082Vorsteuer,
		kz.KZ087Vorsteuer, kz.KZ089Vorsteuer, kz.KZ064Vorsteuer,
		kz.KZ062Vorsteuer, kz.KZ063Vorsteuer, kz.KZ067Vorsteuer,
	}
	for _, f := range fields {
		if !f.IsZero() {
			return false
		}
	}
	return true
}
