package testutils

import (
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/testutils/builders"
)

// Fixture IDs
const (
	TestAgentID   = "agent-fox"
	TestPlayerID  = "player-1"
	TestGlockID   = "weapon-glock"
	TestKnifeID   = "weapon-knife"
	TestShotgunID = "weapon-shotgun"
	TestCustomID  = "weapon-custom"
)

// CreateTestAgent builds a seasoned agent with a weapon for every roll path
func CreateTestAgent() *deltagreen.Agent {
	return builders.NewAgentBuilder().
		WithID(TestAgentID).
		WithPlayerID(TestPlayerID).
		WithStat(deltagreen.StatStrength, 14).
		WithStat(deltagreen.StatConstitution, 12).
		WithStat(deltagreen.StatDexterity, 11).
		WithStat(deltagreen.StatPower, 13).
		WithSkill("firearms", 40).
		WithSkill("alertness", 55).
		WithSkill(deltagreen.SkillUnarmedCombat, 40).
		WithSkill(deltagreen.SkillMeleeWeapons, 30).
		WithSkill(deltagreen.SkillUnnatural, 4).
		WithTypedSkill("tskill_russian", "Foreign Language", "Russian", 35).
		WithSanity(60, "1", "1d6").
		WithWeapon(deltagreen.Weapon{ID: TestGlockID, Name: "Glock 17", Skill: "firearms", Damage: "1d10"}).
		WithWeapon(deltagreen.Weapon{ID: TestKnifeID, Name: "Combat Knife", Skill: deltagreen.SkillMeleeWeapons, Damage: "1d4"}).
		WithWeapon(deltagreen.Weapon{ID: TestShotgunID, Name: "Shotgun", Skill: "firearms", IsLethal: true, Lethality: 20}).
		WithWeapon(deltagreen.Weapon{ID: TestCustomID, Name: "Taser", Skill: deltagreen.WeaponSkillCustom, CustomSkillTarget: 60, SkillModifier: 10, Damage: "1d6"}).
		Build()
}
