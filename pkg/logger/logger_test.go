// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer func() {
		require.NoError(t, Configure("info", "text"))
		SetOutput(os.Stderr)
	}()

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, base().GetLevel())

	var buf bytes.Buffer
	SetOutput(&buf)
	GetProjectLogger().WithField("rows", 3).Info("written")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, "gwts", fields["name"])
	assert.Equal(t, "written", fields["msg"])
	assert.Equal(t, float64(3), fields["rows"])
}

func TestConfigureErrors(t *testing.T) {
	assert.Error(t, Configure("loud", "text"))
	assert.Error(t, Configure("info", "xml"))
}
