package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount_AbsentSumsAsZero(t *testing.T) {
	a := None()

	assert.False(t, a.Present)
	assert.Equal(t, 0.0, a.Float())
	assert.Equal(t, 0.0, a.Monthly())
	assert.False(t, a.Positive())
}

func TestAmount_RecordedZeroIsDistinguishable(t *testing.T) {
	zero := Some(0)

	assert.True(t, zero.Present)
	assert.Equal(t, 0.0, zero.Float())
	assert.False(t, zero.Positive())
	assert.NotEqual(t, None(), zero)
}

func TestAmount_Monthly(t *testing.T) {
	assert.Equal(t, 3000.0, Some(36000).Monthly())
}

func TestPerson_IncomeComponents(t *testing.T) {
	p := Person{
		Wages:          Some(24000),
		SelfEmployment: Some(6000),
		Retirement:     Some(1200),
		SocialSecurity: Some(2400),
	}

	assert.Equal(t, 30000.0, p.EarnedIncome())
	assert.Equal(t, 3600.0, p.UnearnedIncome())
	assert.True(t, p.Working())
	assert.False(t, Person{}.Working())
}
