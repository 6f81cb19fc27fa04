// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package verdict

import (
	"encoding/json"

	"fillmore-labs.com/methodguard/internal/diag"
	"fillmore-labs.com/methodguard/internal/exceptions"
	"fillmore-labs.com/methodguard/internal/mutation"
	"fillmore-labs.com/methodguard/internal/tree"
)

// MethodVerdict combines the findings for one method. It is not modified after construction.
type MethodVerdict struct {
	Method      *tree.Method
	Index       int // Declaration index within the unit
	Status      Status
	Kind        exceptions.Kind
	Mutations   []mutation.Verdict // One per collection parameter
	Throws      []exceptions.Throw
	Undeclared  []string
	Diagnostics []diag.Diagnostic
	Err         error // Reason for [Unanalyzable]
}

// Name returns the method name.
func (v MethodVerdict) Name() string { return v.Method.Sig.Name }

// Mutated returns the mutation verdicts of mutated parameters.
func (v MethodVerdict) Mutated() []mutation.Verdict {
	return mutation.Result{Verdicts: v.Mutations}.Mutated()
}

// ExceptionKind returns the reported exception kind, "UNANALYZABLE" for methods that could not be analyzed.
func (v MethodVerdict) ExceptionKind() string {
	if v.Status == Unanalyzable {
		return Unanalyzable.String()
	}

	return v.Kind.String()
}

// Report is the serialized form of a [MethodVerdict].
type Report struct {
	MethodName        string             `json:"methodName"                  yaml:"methodName"`
	ExceptionKind     string             `json:"exceptionKind"               yaml:"exceptionKind"`
	MutatedParameters []MutatedParameter `json:"mutatedParameters"           yaml:"mutatedParameters"`
	UndeclaredChecked []string           `json:"undeclaredChecked,omitempty" yaml:"undeclaredChecked,omitempty"`
	Diagnostics       []string           `json:"diagnostics,omitempty"       yaml:"diagnostics,omitempty"`
}

// MutatedParameter is a mutated parameter and its first mutating call site.
type MutatedParameter struct {
	ParamName string `json:"paramName" yaml:"paramName"`
	Location  string `json:"location"  yaml:"location"`
}

// Report converts v to its serialized form.
func (v MethodVerdict) Report() Report {
	r := Report{
		MethodName:        v.Name(),
		ExceptionKind:     v.ExceptionKind(),
		MutatedParameters: []MutatedParameter{},
		UndeclaredChecked: v.Undeclared,
	}

	for _, m := range v.Mutated() {
		r.MutatedParameters = append(r.MutatedParameters, MutatedParameter{ParamName: m.Param, Location: m.At.String()})
	}

	if v.Err != nil {
		r.Diagnostics = append(r.Diagnostics, v.Err.Error())
	}

	for _, d := range v.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, d.String())
	}

	return r
}

// MarshalJSON implements [json.Marshaler].
func (v MethodVerdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Report())
}

// MarshalYAML implements the yaml.v3 Marshaler interface.
func (v MethodVerdict) MarshalYAML() (any, error) {
	return v.Report(), nil
}
