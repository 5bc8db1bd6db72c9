// Package deltagreen holds the agent sheet the check pipeline reads from.
// Values that are derived from other fields are computed by methods and
// never stored.
package deltagreen

import (
	"sort"
)

// Agent is a player character sheet
type Agent struct {
	ID          string                `json:"id" yaml:"id"`
	PlayerID    string                `json:"player_id" yaml:"player_id"`
	Name        string                `json:"name" yaml:"name"`
	Statistics  map[string]Statistic  `json:"statistics" yaml:"statistics"`
	Skills      map[string]Skill      `json:"skills" yaml:"skills"`
	TypedSkills map[string]TypedSkill `json:"typed_skills,omitempty" yaml:"typed_skills,omitempty"`
	Sanity      Sanity                `json:"sanity" yaml:"sanity"`
	Weapons     []Weapon              `json:"weapons,omitempty" yaml:"weapons,omitempty"`
	Trainings   []SpecialTraining     `json:"special_training,omitempty" yaml:"special_training,omitempty"`
	CreatedAt   int64                 `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt   int64                 `json:"updated_at,omitempty" yaml:"-"`
}

// Statistic is one of the six raw scores
type Statistic struct {
	Value int `json:"value" yaml:"value"`
}

// X5 is the percentile target for a statistic roll
func (s Statistic) X5() int {
	return s.Value * 5
}

// Skill is a base skill. Failure marks it for improvement at the end of
// the session.
type Skill struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Proficiency int    `json:"proficiency" yaml:"proficiency"`
	Failure     bool   `json:"failure" yaml:"failure"`
}

// TypedSkill is a user-defined skill grouped under a family such as
// "Art" or "Foreign Language".
type TypedSkill struct {
	Label       string `json:"label" yaml:"label"`
	Group       string `json:"group" yaml:"group"`
	Proficiency int    `json:"proficiency" yaml:"proficiency"`
	Failure     bool   `json:"failure" yaml:"failure"`
}

// DisplayName renders "Group (Label)"
func (t TypedSkill) DisplayName() string {
	return t.Group + " (" + t.Label + ")"
}

// Sanity tracks the current score and the loss pair of the last threat
type Sanity struct {
	Value                int         `json:"value" yaml:"value"`
	CurrentBreakingPoint int         `json:"current_breaking_point" yaml:"current_breaking_point"`
	SuccessLoss          string      `json:"success_loss,omitempty" yaml:"success_loss,omitempty"`
	FailedLoss           string      `json:"failed_loss,omitempty" yaml:"failed_loss,omitempty"`
	Adaptations          Adaptations `json:"adaptations" yaml:"adaptations"`
}

// Adaptations counts incidents of each sanity threat type
type Adaptations struct {
	Violence     [3]bool `json:"violence" yaml:"violence"`
	Helplessness [3]bool `json:"helplessness" yaml:"helplessness"`
}

// ViolenceAdapted is true once all three violence incidents are checked
func (a Adaptations) ViolenceAdapted() bool {
	return a.Violence[0] && a.Violence[1] && a.Violence[2]
}

// HelplessnessAdapted is true once all three helplessness incidents are checked
func (a Adaptations) HelplessnessAdapted() bool {
	return a.Helplessness[0] && a.Helplessness[1] && a.Helplessness[2]
}

// Weapon is an item that can be rolled for to-hit, lethality and damage
type Weapon struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Skill             string `json:"skill" yaml:"skill"`
	SkillModifier     int    `json:"skill_modifier" yaml:"skill_modifier"`
	CustomSkillTarget int    `json:"custom_skill_target,omitempty" yaml:"custom_skill_target,omitempty"`
	Damage            string `json:"damage,omitempty" yaml:"damage,omitempty"`
	IsLethal          bool   `json:"is_lethal" yaml:"is_lethal"`
	Lethality         int    `json:"lethality,omitempty" yaml:"lethality,omitempty"`
}

// SpecialTraining is a named training rolled against a stat or skill
type SpecialTraining struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Attribute string `json:"attribute" yaml:"attribute"`
}

// SpecialTraining looks up a training by ID
func (a *Agent) SpecialTraining(id string) (SpecialTraining, bool) {
	for _, t := range a.Trainings {
		if t.ID == id {
			return t, true
		}
	}
	return SpecialTraining{}, false
}

// Statistic returns the named statistic
func (a *Agent) Statistic(key string) (Statistic, bool) {
	s, ok := a.Statistics[key]
	return s, ok
}

// Skill returns a base skill. Ritual is always derived from sanity.
func (a *Agent) Skill(key string) (Skill, bool) {
	if key == SkillRitual {
		return Skill{Label: "Ritual", Proficiency: a.RitualProficiency()}, true
	}
	s, ok := a.Skills[key]
	return s, ok
}

// TypedSkill returns a typed skill by key
func (a *Agent) TypedSkill(key string) (TypedSkill, bool) {
	s, ok := a.TypedSkills[key]
	return s, ok
}

// Weapon looks up a weapon by ID
func (a *Agent) Weapon(id string) (*Weapon, bool) {
	for i := range a.Weapons {
		if a.Weapons[i].ID == id {
			return &a.Weapons[i], true
		}
	}
	return nil, false
}

// RitualProficiency is 99 minus sanity, clamped to [1, 99]
func (a *Agent) RitualProficiency() int {
	return clamp(99-a.Sanity.Value, 1, 99)
}

// SanityMax is 99 minus the unnatural skill
func (a *Agent) SanityMax() int {
	return 99 - a.Skills[SkillUnnatural].Proficiency
}

// BreakingPoint is sanity minus POW, never below zero
func (a *Agent) BreakingPoint() int {
	bp := a.Sanity.Value - a.Statistics[StatPower].Value
	if bp < 0 {
		return 0
	}
	return bp
}

// ResetBreakingPoint stores the freshly computed breaking point
func (a *Agent) ResetBreakingPoint() {
	a.Sanity.CurrentBreakingPoint = a.BreakingPoint()
}

// HealthMax is the rounded-up mean of CON and STR
func (a *Agent) HealthMax() int {
	sum := a.Statistics[StatConstitution].Value + a.Statistics[StatStrength].Value
	return (sum + 1) / 2
}

// WillpowerMax equals POW
func (a *Agent) WillpowerMax() int {
	return a.Statistics[StatPower].Value
}

// MeleeDamageBonusFormula is the dice term added to unarmed and melee
// damage, derived from STR.
func (a *Agent) MeleeDamageBonusFormula() string {
	str := a.Statistics[StatStrength].Value
	switch {
	case str <= 4:
		return "-2"
	case str <= 8:
		return "-1"
	case str <= 12:
		return ""
	case str <= 16:
		return "+1"
	default:
		return "+2"
	}
}

// FailedSkills lists base and typed skill keys with the failure flag
// set, sorted so improvement rolls are applied in a stable order.
func (a *Agent) FailedSkills() (base []string, typed []string) {
	for key, s := range a.Skills {
		if s.Failure && CanImproveByFailure(key) {
			base = append(base, key)
		}
	}
	for key, s := range a.TypedSkills {
		if s.Failure {
			typed = append(typed, key)
		}
	}
	sort.Strings(base)
	sort.Strings(typed)
	return base, typed
}

// MarkSkillFailed flags a base or typed skill for improvement. It
// returns false when the key is unknown or cannot improve.
func (a *Agent) MarkSkillFailed(key string, typed bool) bool {
	if typed {
		s, ok := a.TypedSkills[key]
		if !ok {
			return false
		}
		s.Failure = true
		a.TypedSkills[key] = s
		return true
	}

	if !CanImproveByFailure(key) {
		return false
	}
	s, ok := a.Skills[key]
	if !ok {
		return false
	}
	s.Failure = true
	a.Skills[key] = s
	return true
}

// ImproveSkill adds gain to a skill and clears its failure flag
func (a *Agent) ImproveSkill(key string, typed bool, gain int) {
	if typed {
		s := a.TypedSkills[key]
		s.Proficiency += gain
		s.Failure = false
		a.TypedSkills[key] = s
		return
	}
	s := a.Skills[key]
	s.Proficiency += gain
	s.Failure = false
	a.Skills[key] = s
}

// Normalize fills in missing maps and seeds sanity on a fresh sheet
// (a value of 100 or more means it was never set).
func (a *Agent) Normalize() {
	if a.Statistics == nil {
		a.Statistics = make(map[string]Statistic)
	}
	if a.Skills == nil {
		a.Skills = make(map[string]Skill)
	}
	if a.TypedSkills == nil {
		a.TypedSkills = make(map[string]TypedSkill)
	}
	if a.Sanity.Value >= 100 {
		a.Sanity.Value = a.Statistics[StatPower].X5()
		a.ResetBreakingPoint()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
