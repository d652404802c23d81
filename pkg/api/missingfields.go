package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// MissingFields retains values that do not map to struct fields during JSON
// marshalling/unmarshalling.  MissingFields implements
// github.com/ugorji/go/codec.MissingFielder.
type MissingFields struct {
	m map[string]interface{}
}

func (mf *MissingFields) CodecMissingField(field []byte, value interface{}) bool {
	if mf.m == nil {
		mf.m = map[string]interface{}{}
	}
	(mf.m)[string(field)] = value
	return true
}

func (mf *MissingFields) CodecMissingFields() map[string]interface{} {
	return mf.m
}
