package deltagreen

// Statistic keys
const (
	StatStrength     = "str"
	StatConstitution = "con"
	StatDexterity    = "dex"
	StatIntelligence = "int"
	StatPower        = "pow"
	StatCharisma     = "cha"
)

// Skill keys with rules attached to them
const (
	SkillUnarmedCombat = "unarmed_combat"
	SkillMeleeWeapons  = "melee_weapons"
	SkillUnnatural     = "unnatural"
	SkillRitual        = "ritual"
	SkillLuck          = "luck"
)

// WeaponSkillCustom marks a weapon rolled against its own custom target
const WeaponSkillCustom = "custom"

// LuckTarget is the fixed target of a luck roll
const LuckTarget = 50

// Statistics lists the rollable statistics in sheet order
var Statistics = []string{
	StatStrength,
	StatConstitution,
	StatDexterity,
	StatIntelligence,
	StatPower,
	StatCharisma,
}

// BaseSkills lists the skills every agent has in sheet order
var BaseSkills = []string{
	"accounting",
	"alertness",
	"anthropology",
	"archeology",
	"artillery",
	"athletics",
	"bureaucracy",
	"computer_science",
	"criminology",
	"demolitions",
	"disguise",
	"dodge",
	"drive",
	"firearms",
	"first_aid",
	"forensics",
	"heavy_machiner",
	"heavy_weapons",
	"history",
	"humint",
	"law",
	"medicine",
	SkillMeleeWeapons,
	"navigate",
	"occult",
	"persuade",
	"pharmacy",
	"psychotherapy",
	"ride",
	"search",
	"sigint",
	"stealth",
	"surgery",
	"survival",
	"swim",
	SkillUnarmedCombat,
	SkillUnnatural,
	SkillRitual,
}

// IsStatistic reports whether key names one of the six statistics
func IsStatistic(key string) bool {
	for _, s := range Statistics {
		if s == key {
			return true
		}
	}
	return false
}

// CanImproveByFailure reports whether a failed roll on key earns an
// improvement. Unnatural, luck and ritual never do.
func CanImproveByFailure(key string) bool {
	switch key {
	case SkillUnnatural, SkillLuck, SkillRitual:
		return false
	default:
		return true
	}
}
