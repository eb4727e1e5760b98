package bdd

import "github.com/cucumber/godog"

// Feature: Bottle exchange
//   In order to talk to a stranger
//   As an anonymous drifter
//   I want to cast bottles into the ocean and claim the ones I find

//   Background:
//     Given "drifterA" has entered the void with token "tokenA"
//     And "drifterB" has entered the void with token "tokenB"

//   Scenario: Cast and pick a bottle
//     When "drifterA" casts a bottle saying "hello from the void"
//     And "drifterB" picks a bottle
//     Then "drifterB" should see the bottle "hello from the void"

//   Scenario: Throw a bottle back
//     Given "drifterB" has picked the bottle from "drifterA"
//     When "drifterB" throws the bottle back
//     Then "drifterB" should never see that bottle again this session

//   Scenario: Claim opens a private chat
//     Given "drifterB" has picked the bottle from "drifterA"
//     When "drifterB" claims the bottle
//     Then a chat should open between "drifterA" and "drifterB"
//     And the first message should carry the bottle text

//   Scenario: Only one claimer wins
//     Given "drifterB" and "drifterC" both picked the bottle from "drifterA"
//     When both claim the bottle at the same time
//     Then exactly one claim should succeed

func hasEnteredTheVoidWithToken(arg1, arg2 string) error {
	return godog.ErrPending
}

func castsABottleSaying(arg1, arg2 string) error {
	return godog.ErrPending
}

func picksABottle(arg1 string) error {
	return godog.ErrPending
}

func shouldSeeTheBottle(arg1, arg2 string) error {
	return godog.ErrPending
}

func hasPickedTheBottleFrom(arg1, arg2 string) error {
	return godog.ErrPending
}

func throwsTheBottleBack(arg1 string) error {
	return godog.ErrPending
}

func shouldNeverSeeThatBottleAgainThisSession(arg1 string) error {
	return godog.ErrPending
}

func claimsTheBottle(arg1 string) error {
	return godog.ErrPending
}

func aChatShouldOpenBetweenAnd(arg1, arg2 string) error {
	return godog.ErrPending
}

func theFirstMessageShouldCarryTheBottleText() error {
	return godog.ErrPending
}

func andBothPickedTheBottleFrom(arg1, arg2, arg3 string) error {
	return godog.ErrPending
}

func bothClaimTheBottleAtTheSameTime() error {
	return godog.ErrPending
}

func exactlyOneClaimShouldSucceed() error {
	return godog.ErrPending
}

func InitializeBottleServiceScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^"([^"]*)" has entered the void with token "([^"]*)"$`, hasEnteredTheVoidWithToken)
	ctx.Step(`^"([^"]*)" casts a bottle saying "([^"]*)"$`, castsABottleSaying)
	ctx.Step(`^"([^"]*)" picks a bottle$`, picksABottle)
	ctx.Step(`^"([^"]*)" should see the bottle "([^"]*)"$`, shouldSeeTheBottle)
	ctx.Step(`^"([^"]*)" has picked the bottle from "([^"]*)"$`, hasPickedTheBottleFrom)
	ctx.Step(`^"([^"]*)" throws the bottle back$`, throwsTheBottleBack)
	ctx.Step(`^"([^"]*)" should never see that bottle again this session$`, shouldNeverSeeThatBottleAgainThisSession)
	ctx.Step(`^"([^"]*)" claims the bottle$`, claimsTheBottle)
	ctx.Step(`^a chat should open between "([^"]*)" and "([^"]*)"$`, aChatShouldOpenBetweenAnd)
	ctx.Step(`^the first message should carry the bottle text$`, theFirstMessageShouldCarryTheBottleText)
	ctx.Step(`^"([^"]*)" and "([^"]*)" both picked the bottle from "([^"]*)"$`, andBothPickedTheBottleFrom)
	ctx.Step(`^both claim the bottle at the same time$`, bothClaimTheBottleAtTheSameTime)
	ctx.Step(`^exactly one claim should succeed$`, exactlyOneClaimShouldSucceed)
}
