// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0
//

package utils

import (
	"testing"

	"gotest.tools/assert"
)

func Test_RoundToDecimal(t *testing.T) {
	floatValue := 1.123456789
	roundedValue := RoundToDecimal(floatValue, 4)
	assert.Equal(t, roundedValue, 1.1235)

}

func Test_GetEnv(t *testing.T) {
	t.Setenv("ITM_TEST_ENV", "set")
	assert.Equal(t, "set", GetEnv("ITM_TEST_ENV", "default"))
	assert.Equal(t, "default", GetEnv("ITM_TEST_ENV_MISSING", "default"))
}

func Test_If(t *testing.T) {
	assert.Equal(t, "a", If(true, "a", "b"))
	assert.Equal(t, 2, If(false, 1, 2))
}
