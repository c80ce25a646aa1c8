package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	gvr := schema.GroupVersionResource{Group: "deckhouse.io", Version: "v1alpha1", Resource: "moduleconfigs"}
	core := schema.GroupVersionResource{Version: "v1", Resource: "nodes"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "credential",
			err:  &CredentialError{Operation: "get in-cluster config", Err: cause},
			want: "k8s client error during get in-cluster config: boom",
		},
		{
			name: "enumeration",
			err:  &EnumerationError{GVR: gvr, Err: cause},
			want: "failed to list moduleconfigs.deckhouse.io/v1alpha1: boom",
		},
		{
			name: "enumeration core group",
			err:  &EnumerationError{GVR: core, Err: cause},
			want: "failed to list nodes/v1: boom",
		},
		{
			name: "mutation",
			err:  &MutationError{GVR: gvr, Name: "sds-local-volume", Err: cause},
			want: "failed to patch moduleconfigs.deckhouse.io/v1alpha1/sds-local-volume: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}
