package checks

import (
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Kind selects how a check derives its target and how it is reported
type Kind int

// Check kinds
const (
	KindUnspecified Kind = iota
	KindStat
	KindSkill
	KindTypedSkill
	KindSpecialTraining
	KindSanity
	KindLuck
	KindWeaponCustom
	KindWeaponSkill
	KindWeaponStat
	KindLethality
	KindDamage
	KindSanityDamage
)

var kindNames = map[Kind]string{
	KindStat:            "stat",
	KindSkill:           "skill",
	KindTypedSkill:      "typed-skill",
	KindSpecialTraining: "special-training",
	KindSanity:          "sanity",
	KindLuck:            "luck",
	KindWeaponCustom:    "weapon-custom",
	KindWeaponSkill:     "weapon-skill",
	KindWeaponStat:      "weapon-stat",
	KindLethality:       "lethality",
	KindDamage:          "damage",
	KindSanityDamage:    "sanity-damage",
}

// KindNames lists the wire names of every kind, plus "weapon" which is
// narrowed to a concrete weapon kind from the weapon's skill.
func KindNames() []string {
	names := make([]string, 0, len(kindNames)+1)
	for k := KindStat; k <= KindSanityDamage; k++ {
		names = append(names, kindNames[k])
	}
	return append(names, kindWeapon)
}

const kindWeapon = "weapon"

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unspecified"
}

// ParseKind maps a wire name onto a Kind. "weapon" needs the weapon to
// pick between custom, skill and stat, so it is resolved with WeaponKind.
func ParseKind(s string, weapon *deltagreen.Weapon) (Kind, error) {
	if s == kindWeapon {
		if weapon == nil {
			return KindUnspecified, errors.InvalidArgument("weapon checks need a weapon")
		}
		return WeaponKind(weapon), nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnspecified, errors.InvalidArgumentf("unknown check kind %q", s)
}

// WeaponKind picks the to-hit kind for a weapon
func WeaponKind(w *deltagreen.Weapon) Kind {
	switch {
	case w.Skill == deltagreen.WeaponSkillCustom:
		return KindWeaponCustom
	case deltagreen.IsStatistic(w.Skill):
		return KindWeaponStat
	default:
		return KindWeaponSkill
	}
}

// IsPercentile reports whether the kind rolls 1d100 against a target
func (k Kind) IsPercentile() bool {
	switch k {
	case KindStat, KindSkill, KindTypedSkill, KindSpecialTraining, KindSanity, KindLuck,
		KindWeaponCustom, KindWeaponSkill, KindWeaponStat, KindLethality:
		return true
	default:
		return false
	}
}

// NeedsWeapon reports whether the kind reads an item
func (k Kind) NeedsWeapon() bool {
	switch k {
	case KindWeaponCustom, KindWeaponSkill, KindWeaponStat, KindLethality, KindDamage:
		return true
	default:
		return false
	}
}
