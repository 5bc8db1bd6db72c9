package checks

import (
	"fmt"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

//go:generate mockgen -destination=mock/mock_localizer.go -package=checksmock github.com/KirkDiggler/deltagreen-api/internal/checks Localizer,Prompter

// Localizer looks up display strings. Missing keys come back as the key
// itself from Localize and as fallback from LocalizeWithFallback.
type Localizer interface {
	Localize(key string) string
	LocalizeWithFallback(key, fallback string) string
}

// Resolution is the target and label a check rolls against
type Resolution struct {
	Target   int
	Label    string
	Modifier int

	// SkillKey is the base or typed skill the target came from, empty
	// when it came from a statistic, sanity, luck or an item.
	SkillKey string
	Typed    bool

	// Degraded is set when the key could not be found. Target is 0 and
	// the check can only fail.
	Degraded bool
}

// ResolveInput is everything a resolution may read
type ResolveInput struct {
	Kind         Kind
	Key          string
	Agent        *deltagreen.Agent
	Weapon       *deltagreen.Weapon
	TrainingName string
}

// Resolver derives targets and labels from an agent sheet
type Resolver struct {
	localizer Localizer
}

// NewResolver creates a Resolver
func NewResolver(localizer Localizer) *Resolver {
	return &Resolver{localizer: localizer}
}

// Resolve never fails; unknown keys produce a degraded resolution
func (r *Resolver) Resolve(in ResolveInput) Resolution {
	if in.Agent == nil {
		return Resolution{Degraded: true}
	}

	switch in.Kind {
	case KindStat:
		return r.stat(in.Agent, in.Key)

	case KindSkill:
		return r.skill(in.Agent, in.Key, true)

	case KindTypedSkill:
		return r.typedSkill(in.Agent, in.Key)

	case KindSpecialTraining:
		res := r.anyKey(in.Agent, in.Key)
		if !res.Degraded {
			res.Label = fmt.Sprintf("%s - (%s)", in.TrainingName, res.Label)
		}
		return res

	case KindSanity:
		return Resolution{
			Target: in.Agent.Sanity.Value,
			Label:  r.localizer.Localize("DG.Attributes.SAN"),
		}

	case KindLuck:
		return Resolution{
			Target: deltagreen.LuckTarget,
			Label:  r.localizer.Localize("DG.Luck"),
		}

	case KindWeaponCustom:
		if in.Weapon == nil {
			return Resolution{Degraded: true}
		}
		return Resolution{
			Target:   in.Weapon.CustomSkillTarget,
			Label:    r.localizer.Localize("DG.ItemWindow.Custom"),
			Modifier: in.Weapon.SkillModifier,
		}

	case KindWeaponSkill:
		if in.Weapon == nil {
			return Resolution{Degraded: true}
		}
		res := r.anyKey(in.Agent, in.Weapon.Skill)
		res.Modifier += in.Weapon.SkillModifier
		return res

	case KindWeaponStat:
		if in.Weapon == nil {
			return Resolution{Degraded: true}
		}
		res := r.stat(in.Agent, in.Weapon.Skill)
		res.Modifier += in.Weapon.SkillModifier
		return res

	case KindLethality:
		if in.Weapon == nil {
			return Resolution{Degraded: true}
		}
		return Resolution{
			Target: in.Weapon.Lethality,
			Label:  r.localizer.Localize("DG.ItemWindow.Weapons.Lethality"),
		}

	case KindDamage, KindSanityDamage, KindUnspecified:
		return Resolution{Degraded: true}
	}

	return Resolution{Degraded: true}
}

func (r *Resolver) stat(agent *deltagreen.Agent, key string) Resolution {
	stat, ok := agent.Statistic(key)
	if !ok {
		return Resolution{Degraded: true}
	}
	return Resolution{
		Target: stat.X5(),
		Label:  r.localizer.Localize("DG.Attributes." + key),
	}
}

func (r *Resolver) skill(agent *deltagreen.Agent, key string, allowTyped bool) Resolution {
	if skill, ok := agent.Skill(key); ok {
		return Resolution{
			Target:   skill.Proficiency,
			Label:    r.localizer.LocalizeWithFallback("DG.Skills."+key, skill.Label),
			SkillKey: key,
		}
	}
	if allowTyped {
		return r.typedSkill(agent, key)
	}
	return Resolution{Degraded: true}
}

func (r *Resolver) typedSkill(agent *deltagreen.Agent, key string) Resolution {
	typed, ok := agent.TypedSkill(key)
	if !ok {
		return Resolution{Degraded: true}
	}
	return Resolution{
		Target:   typed.Proficiency,
		Label:    typed.DisplayName(),
		SkillKey: key,
		Typed:    true,
	}
}

// anyKey tries statistics, then base skills, then typed skills
func (r *Resolver) anyKey(agent *deltagreen.Agent, key string) Resolution {
	if deltagreen.IsStatistic(key) {
		if res := r.stat(agent, key); !res.Degraded {
			return res
		}
	}
	return r.skill(agent, key, true)
}
