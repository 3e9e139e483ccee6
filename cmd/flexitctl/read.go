// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexit/flexit-bacnet/bacnet"
)

var (
	readObject   string
	readProperty string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read one property from one object via ReadPropertyMultiple",
	Long: `read issues a ReadPropertyMultiple request for a single object
and prints the requested property.

Object types: analog-input, analog-output, analog-value, binary-value,
device, multi-state-value, positive-integer-value (or their numeric
codes). Properties: present-value, object-name, description (or their
numeric codes).

Examples:
  flexitctl read --host 192.168.1.50 --device 2 --object analog-input:1 --property present-value
  flexitctl read --host 192.168.1.50 --device 2 --object device:2 --property object-name`,
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVarP(&readObject, "object", "O", "", "Object type and instance, e.g. analog-input:1")
	readCmd.Flags().StringVarP(&readProperty, "property", "P", "present-value", "Property identifier")
	readCmd.MarkFlagRequired("object")
}

func runRead(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	objID, err := parseObjectIdentifier(readObject)
	if err != nil {
		return fmt.Errorf("invalid object: %w", err)
	}
	propID, err := parsePropertyIdentifier(readProperty)
	if err != nil {
		return fmt.Errorf("invalid property: %w", err)
	}

	client := bacnet.NewClient(host, port, bacnet.WithTimeout(timeout), bacnet.WithLogger(logger))
	descriptor := bacnet.NewPropertyDescriptor(objID.Type, objID.InstanceId).WithReadValues(propID)

	state, err := client.ReadPropertyMultiple([]bacnet.PropertyDescriptor{descriptor})
	if err != nil {
		return fmt.Errorf("read property: %w", err)
	}

	value, ok := state.Value(objID, propID)
	if !ok {
		return fmt.Errorf("unit did not return %s for %s", propID, objID)
	}

	switch outputFmt {
	case "json":
		fmt.Printf(`{"object":%q,"property":%q,"value":%q}`+"\n", objID.String(), propID.String(), value.String())
	case "csv":
		fmt.Printf("%s,%s,%s\n", objID.String(), propID.String(), value.String())
	default:
		fmt.Printf("object:   %s\nproperty: %s\nvalue:    %s\n", objID.String(), propID.String(), value.String())
	}
	return nil
}

var objectTypeNames = map[string]bacnet.ObjectType{
	"analog-input":           bacnet.AnalogInput,
	"analog-output":          bacnet.AnalogOutput,
	"analog-value":           bacnet.AnalogValue,
	"binary-value":           bacnet.BinaryValue,
	"device":                 bacnet.Device,
	"multi-state-value":      bacnet.MultiStateValue,
	"positive-integer-value": bacnet.PositiveIntegerValue,
}

var propertyNames = map[string]bacnet.PropertyId{
	"present-value": bacnet.PresentValue,
	"object-name":   bacnet.ObjectName,
	"description":   bacnet.Description,
}

func parseObjectIdentifier(s string) (bacnet.ObjectIdentifier, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return bacnet.ObjectIdentifier{}, fmt.Errorf("expected format type:instance, got %q", s)
	}
	instance, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return bacnet.ObjectIdentifier{}, fmt.Errorf("invalid instance %q: %w", parts[1], err)
	}
	if n, err := strconv.ParseUint(parts[0], 10, 8); err == nil {
		return bacnet.ObjectIdentifier{Type: bacnet.ObjectType(n), InstanceId: uint32(instance)}, nil
	}
	t, ok := objectTypeNames[strings.ToLower(parts[0])]
	if !ok {
		return bacnet.ObjectIdentifier{}, fmt.Errorf("unknown object type %q", parts[0])
	}
	return bacnet.ObjectIdentifier{Type: t, InstanceId: uint32(instance)}, nil
}

func parsePropertyIdentifier(s string) (bacnet.PropertyId, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return bacnet.PropertyId(n), nil
	}
	p, ok := propertyNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown property %q", s)
	}
	return p, nil
}
