package provider

// Kind is the declared type of a required field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Coerce converts v to the Go type of k: int, string or bool. Values that
// cannot be converted, such as a fractional count or a non-numeric ID, are nil.
func (k Kind) Coerce(v interface{}) interface{} {
	switch k {
	case KindInt:
		if n := toInt(v); n != nil {
			return *n
		}
	case KindBool:
		if b := toBool(v); b != nil {
			return *b
		}
	default:
		if s := toString(v); s != nil {
			return *s
		}
	}
	return nil
}

// Field is one required raw field and the value injected when the whole
// batch lacks it. Normalize coerces both present values and Default to Kind;
// a nil Default is a typed null.
type Field struct {
	Name    string
	Kind    Kind
	Default interface{}
}

// Schema is an ordered list of required fields for one entity kind.
type Schema []Field

// Raw schedule fields, as flattened from /schedule?expand=schedule.linescore.
const (
	FieldGamePk        = "gamePk"
	FieldGameType      = "gameType"
	FieldSeason        = "season"
	FieldGameDate      = "gameDate"
	FieldDetailedState = "status.detailedState"
	FieldVenueName     = "venue.name"
	FieldAwayTeamID    = "teams.away.team.id"
	FieldAwayScore     = "teams.away.score"
	FieldHomeTeamID    = "teams.home.team.id"
	FieldHomeScore     = "teams.home.score"
	FieldCurrentPeriod = "linescore.currentPeriod"
	FieldHasShootout   = "linescore.hasShootout"
)

// Raw draft fields, as flattened from /draft/{year} picks.
const (
	FieldDraftYear        = "year"
	FieldDraftRound       = "round"
	FieldPickInRound      = "pickInRound"
	FieldPickOverall      = "pickOverall"
	FieldDraftTeamID      = "team.id"
	FieldProspectID       = "prospect.id"
	FieldProspectFullName = "prospect.fullName"
)

// GameSchema lists every raw schedule field derivation reads. Linescore and
// score fields disappear from payloads for seasons or games the API has not
// finalized, and venue is missing for older seasons.
var GameSchema = Schema{
	{Name: FieldGamePk, Kind: KindString},
	{Name: FieldGameType, Kind: KindString},
	{Name: FieldSeason, Kind: KindString},
	{Name: FieldGameDate, Kind: KindString},
	{Name: FieldDetailedState, Kind: KindString},
	{Name: FieldVenueName, Kind: KindString},
	{Name: FieldAwayTeamID, Kind: KindInt},
	{Name: FieldAwayScore, Kind: KindInt},
	{Name: FieldHomeTeamID, Kind: KindInt},
	{Name: FieldHomeScore, Kind: KindInt},
	{Name: FieldCurrentPeriod, Kind: KindInt},
	{Name: FieldHasShootout, Kind: KindBool},
}

// DraftSchema lists every raw draft pick field derivation reads.
var DraftSchema = Schema{
	{Name: FieldDraftYear, Kind: KindInt},
	{Name: FieldDraftRound, Kind: KindString},
	{Name: FieldPickInRound, Kind: KindInt},
	{Name: FieldPickOverall, Kind: KindInt},
	{Name: FieldDraftTeamID, Kind: KindInt},
	{Name: FieldProspectID, Kind: KindInt},
	{Name: FieldProspectFullName, Kind: KindString},
}

// Normalize makes batch conform to schema. A field absent from every record
// is injected into all of them with its default. A field present in at least
// one record is left absent where it is missing, and the typed Extract*
// accessors read those gaps as null. Every value a schema field holds is
// coerced to the field's Kind. The input records are not modified.
func Normalize(batch []Record, schema Schema) []Record {
	out := make([]Record, len(batch))
	for i, r := range batch {
		out[i] = r.Clone()
	}

	for _, f := range schema {
		if !batchHas(out, f.Name) {
			def := f.Kind.Coerce(f.Default)
			for _, r := range out {
				r[f.Name] = def
			}
			continue
		}
		for _, r := range out {
			if v, ok := r[f.Name]; ok {
				r[f.Name] = f.Kind.Coerce(v)
			}
		}
	}
	return out
}

func batchHas(batch []Record, key string) bool {
	for _, r := range batch {
		if r.Has(key) {
			return true
		}
	}
	return false
}
