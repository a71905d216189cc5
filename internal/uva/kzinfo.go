package uva

// KZInfo is reference metadata for one Kennzahl of the U30 form: display
// label, form section, the UStG paragraph where applicable, which value
// columns the Kennzahl carries and the statutory rate for rate-bound
// fields.
type KZInfo struct {
	KZ           string `json:"kz"`
	Label        string `json:"label"`
	Section      string `json:"section"`
	Paragraph    string `json:"paragraph,omitempty"`
	HasNetto     bool   `json:"has_netto"`
	HasUSt       bool   `json:"has_ust"`
	HasVorsteuer bool   `json:"has_vorsteuer"`
	HasBetrag    bool   `json:"has_betrag"`
	Rate         int    `json:"rate,omitempty"`
}

// KZReference lists every Kennzahl in form order. Read-only; callers must
// not mutate the slice.
var KZReference = []KZInfo{
	// Kopfdaten
	{KZ: "000", Label: "Gesamtbetrag Lieferungen/Leistungen", Section: "Kopfdaten", HasNetto: true},
	{KZ: "001", Label: "Eigenverbrauch", Section: "Kopfdaten", Paragraph: "§1 Abs1 Z2, §3 Abs2, §3a Abs1a", HasNetto: true},
	{KZ: "021", Label: "Abzüglich RC-Umsätze", Section: "Kopfdaten", Paragraph: "§19", HasNetto: true},

	// Abschnitt 1
	{KZ: "022", Label: "20% Normalsteuersatz", Section: "Steuerpflichtige Umsätze", Paragraph: "§10 Abs1", HasNetto: true, HasUSt: true, Rate: 20},
	{KZ: "029", Label: "10% ermäßigter Steuersatz", Section: "Steuerpflichtige Umsätze", Paragraph: "§10 Abs2", HasNetto: true, HasUSt: true, Rate: 10},
	{KZ: "006", Label: "13% ermäßigter Steuersatz", Section: "Steuerpflichtige Umsätze", Paragraph: "§10 Abs3", HasNetto: true, HasUSt: true, Rate: 13},
	{KZ: "037", Label: "19% Jungholz/Mittelberg", Section: "Steuerpflichtige Umsätze", Paragraph: "Art XIV §48", HasNetto: true, HasUSt: true, Rate: 19},
	{KZ: "052", Label: "10% Zusatzsteuer pauschaliert", Section: "Steuerpflichtige Umsätze", Paragraph: "§12 Abs15", HasNetto: true, HasUSt: true, Rate: 10},
	{KZ: "007", Label: "7% Zusatzsteuer land-/forstwirtsch.", Section: "Steuerpflichtige Umsätze", HasNetto: true, HasUSt: true, Rate: 7},

	// Abschnitt 2
	{KZ: "011", Label: "Ausfuhrlieferungen", Section: "Steuerfrei MIT VSt-Abzug", Paragraph: "§6 Abs1 Z1 iVm §7", HasNetto: true},
	{KZ: "012", Label: "Lohnveredelung", Section: "Steuerfrei MIT VSt-Abzug", Paragraph: "§6 Abs1 Z1 iVm §8", HasNetto: true},
	{KZ: "015", Label: "Seeschifffahrt, Luftfahrt, Diplomaten", Section: "Steuerfrei MIT VSt-Abzug", Paragraph: "§6 Abs1 Z2-6", HasNetto: true},
	{KZ: "017", Label: "IG Lieferungen", Section: "Steuerfrei MIT VSt-Abzug", Paragraph: "Art.6 Abs1 BMR", HasNetto: true},
	{KZ: "018", Label: "Fahrzeuglieferungen ohne UID", Section: "Steuerfrei MIT VSt-Abzug", Paragraph: "Art.6 Abs1, Art.2", HasNetto: true},

	// Abschnitt 3
	{KZ: "019", Label: "Grundstücksumsätze", Section: "Steuerfrei OHNE VSt-Abzug", Paragraph: "§6 Abs1 Z9 lit a", HasNetto: true},
	{KZ: "016", Label: "Kleinunternehmer", Section: "Steuerfrei OHNE VSt-Abzug", Paragraph: "§6 Abs1 Z27", HasNetto: true},
	{KZ: "020", Label: "Übrige steuerfreie Umsätze", Section: "Steuerfrei OHNE VSt-Abzug", HasNetto: true},

	// Abschnitt 4
	{KZ: "056", Label: "§11 Abs12/14, §16 Abs2, Art7 Abs4", Section: "Steuerschuld", HasUSt: true},
	{KZ: "057", Label: "§19 Abs1 2.Satz, 1c, 1e, Art25 Abs5", Section: "Steuerschuld", HasUSt: true},
	{KZ: "048", Label: "§19 Abs1a Bauleistungen", Section: "Steuerschuld", HasUSt: true},
	{KZ: "044", Label: "§19 Abs1b Sicherungseigentum", Section: "Steuerschuld", HasUSt: true},
	{KZ: "032", Label: "§19 Abs1d Schrott, Metalle", Section: "Steuerschuld", HasUSt: true},

	// Abschnitt 5
	{KZ: "070", Label: "Gesamtbetrag IG Erwerbe", Section: "IG Erwerbe", HasNetto: true},
	{KZ: "071", Label: "Steuerfrei Art6 Abs2", Section: "IG Erwerbe", HasNetto: true},
	{KZ: "072", Label: "20% IG Erwerbe", Section: "IG Erwerbe", HasNetto: true, HasUSt: true, Rate: 20},
	{KZ: "073", Label: "10% IG Erwerbe", Section: "IG Erwerbe", HasNetto: true, HasUSt: true, Rate: 10},
	{KZ: "008", Label: "13% IG Erwerbe", Section: "IG Erwerbe", HasNetto: true, HasUSt: true, Rate: 13},
	{KZ: "088", Label: "19% IG Erwerbe", Section: "IG Erwerbe", HasNetto: true, HasUSt: true, Rate: 19},
	{KZ: "076", Label: "Nicht zu versteuern Art3 Abs8", Section: "IG Erwerbe", HasNetto: true},
	{KZ: "077", Label: "Nicht zu versteuern Art3 Abs8 + Art25 Abs2", Section: "IG Erwerbe", HasNetto: true},

	// Abschnitt 6
	{KZ: "060", Label: "Gesamtbetrag Vorsteuern", Section: "Vorsteuer", Paragraph: "§12 Abs1 Z1", HasVorsteuer: true},
	{KZ: "061", Label: "EUSt entrichtet", Section: "Vorsteuer", Paragraph: "§12 Abs1 Z2 lit a", HasVorsteuer: true},
	{KZ: "083", Label: "EUSt Abgabenkonto", Section: "Vorsteuer", Paragraph: "§12 Abs1 Z2 lit b", HasVorsteuer: true},
	{KZ: "065", Label: "Vorsteuern IG Erwerbe", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "066", Label: "Vorsteuern §19 Abs1, 1c, 1e", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "082", Label: "Vorsteuern §19 Abs1a (Bauleistungen)", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "087", Label: "Vorsteuern §19 Abs1b (Sicherungseigentum)", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "089", Label: "Vorsteuern §19 Abs1d (Schrott)", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "064", Label: "Vorsteuern IG Fahrzeuge", Section: "Vorsteuer", Paragraph: "Art.2", HasVorsteuer: true},
	{KZ: "062", Label: "Nicht abzugsfähig", Section: "Vorsteuer", Paragraph: "§12 Abs3 iVm 4,5", HasVorsteuer: true},
	{KZ: "063", Label: "Berichtigung §12 Abs10,11", Section: "Vorsteuer", HasVorsteuer: true},
	{KZ: "067", Label: "Berichtigung §16", Section: "Vorsteuer", HasVorsteuer: true},

	// Ergebnis
	{KZ: "090", Label: "Gesamtbetrag abziehbare Vorsteuer", Section: "Ergebnis", HasBetrag: true},
	{KZ: "095", Label: "Vorauszahlung/Überschuss", Section: "Ergebnis", HasBetrag: true},
}

// LookupKZ returns the reference entry for a Kennzahl code, nil if the
// code is unknown.
func LookupKZ(code string) *KZInfo {
	for i := range KZReference {
		if KZReference[i].KZ == code {
			return &KZReference[i]
		}
	}
	return nil
}
