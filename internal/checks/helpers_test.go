package checks_test

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	checksmock "github.com/KirkDiggler/deltagreen-api/internal/checks/mock"
	"github.com/KirkDiggler/deltagreen-api/internal/dice"
	"github.com/KirkDiggler/deltagreen-api/internal/testutils"
)

var englishStrings = map[string]string{
	"DG.Roll.Rolling":                 "Rolling",
	"DG.Roll.Target":                  "Target",
	"DG.Roll.Inhuman":                 "Inhuman",
	"DG.Roll.Critical":                "Critical",
	"DG.Roll.Success":                 "Success",
	"DG.Roll.Failure":                 "Failure",
	"DG.Roll.Lethal":                  "Lethal",
	"DG.Roll.Lethality":               "Lethality",
	"DG.Roll.For":                     "for",
	"DG.Roll.Damage":                  "Damage",
	"DG.Generic.SanDamage":            "SAN DAMAGE",
	"DG.Attributes.str":               "STR",
	"DG.Attributes.con":               "CON",
	"DG.Attributes.pow":               "POW",
	"DG.Attributes.SAN":               "SAN",
	"DG.Luck":                         "Luck",
	"DG.ItemWindow.Custom":            "Custom",
	"DG.ItemWindow.Weapons.Lethality": "Lethality",
	"DG.Skills.firearms":              "Firearms",
	"DG.Skills.alertness":             "Alertness",
}

// newLocalizer answers from englishStrings, echoing unknown keys
func newLocalizer(ctrl *gomock.Controller) *checksmock.MockLocalizer {
	l := checksmock.NewMockLocalizer(ctrl)
	l.EXPECT().Localize(gomock.Any()).DoAndReturn(func(key string) string {
		if s, ok := englishStrings[key]; ok {
			return s
		}
		return key
	}).AnyTimes()
	l.EXPECT().LocalizeWithFallback(gomock.Any(), gomock.Any()).DoAndReturn(func(key, fallback string) string {
		if s, ok := englishStrings[key]; ok {
			return s
		}
		return fallback
	}).AnyTimes()
	return l
}

func newResolver(ctrl *gomock.Controller) *checks.Resolver {
	return checks.NewResolver(newLocalizer(ctrl))
}

// newEvaluator rolls the given faces in order
func newEvaluator(faces ...int) (*dice.Evaluator, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(faces...)
	eval, err := dice.NewEvaluator(&dice.Config{Roller: roller})
	if err != nil {
		panic(err)
	}
	return eval, roller
}
