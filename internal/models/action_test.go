package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEncodeRequest(t *testing.T) {
	id := uint64(42)

	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{"focus by name", FocusWorkspaceByName("web"), `{"Action":{"FocusWorkspace":{"reference":{"Name":"web"}}}}`},
		{"focus by index", FocusWorkspaceByIndex(3), `{"Action":{"FocusWorkspace":{"reference":{"Index":3}}}}`},
		{"focus by id", FocusWorkspaceByID(7), `{"Action":{"FocusWorkspace":{"reference":{"Id":7}}}}`},
		{"focus window", FocusWindow{ID: 9}, `{"Action":{"FocusWindow":{"id":9}}}`},
		{"close window", CloseWindowByID(id), `{"Action":{"CloseWindow":{"id":42}}}`},
		{"close focused", CloseFocusedWindow(), `{"Action":{"CloseWindow":{"id":null}}}`},
		{"workspace up", FocusWorkspaceUp{}, `{"Action":{"FocusWorkspaceUp":{}}}`},
		{"workspace down", FocusWorkspaceDown{}, `{"Action":{"FocusWorkspaceDown":{}}}`},
		{"workspace previous", FocusWorkspacePrevious{}, `{"Action":{"FocusWorkspacePrevious":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRequest(tt.action)
			if err != nil {
				t.Fatalf("EncodeRequest() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("EncodeRequest() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeRequest_FocusByNameWireShape(t *testing.T) {
	data, err := EncodeRequest(FocusWorkspaceByName("N"))
	if err != nil {
		t.Fatalf("EncodeRequest() error = %v", err)
	}

	var got interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	want := map[string]interface{}{
		"Action": map[string]interface{}{
			"FocusWorkspace": map[string]interface{}{
				"reference": map[string]interface{}{"Name": "N"},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded = %#v, want %#v", got, want)
	}
}

func TestEncodeRequest_Nil(t *testing.T) {
	if _, err := EncodeRequest(nil); err == nil {
		t.Error("expected error for nil action")
	}
}
