package uploads

// Known plant grade rosters by product group. The daily schedule workbook
// carries grade names only, so a grade seen there before any history upload
// is registered under its rostered group.
var groupGrades = map[string][]string{
	"Rebar": {"B500A", "B500B", "B500C"},
	"MBQ":   {"A36", "A5888", "GR50", "44W", "50W", "55W", "60W"},
	"SBQ":   {"S235JR", "S355J", "C35", "C40"},
	"CHQ": {
		"A53/A543",
		"A53/C591",
		"A53/C592",
		"A53/C593",
		"A53/C594",
		"A53/C595",
		"A53/C596",
		"A53/C597",
		"A53/C598",
		"A53/C599",
		"A53/C600",
	},
}

// unknownGroupName is the catch-all group for grades absent from the roster.
const unknownGroupName = "Unknown"

var gradeGroups = invertRoster()

func invertRoster() map[string]string {
	m := make(map[string]string)
	for group, grades := range groupGrades {
		for _, grade := range grades {
			m[grade] = group
		}
	}
	return m
}

// groupForGrade returns the rostered product group for a grade, or the
// catch-all group when the grade is not rostered.
func groupForGrade(grade string) string {
	if group, ok := gradeGroups[grade]; ok {
		return group
	}
	return unknownGroupName
}
