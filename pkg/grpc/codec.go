package grpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/minute-policy-service/pkg/family"
)

// decodeStruct fills out from the JSON form of in.
func decodeStruct(in *structpb.Struct, out any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// encodeStruct turns any JSON encodable value into a Struct. The value must
// encode as a JSON object.
func encodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func invalidArgument(err error) error {
	return status.Errorf(codes.InvalidArgument, "validation error: %v", err)
}

func issuesError(issues z.ZogIssueMap) error {
	var parts []string
	for field, list := range issues {
		if strings.HasPrefix(field, "$") {
			continue
		}
		for _, issue := range list {
			parts = append(parts, field+": "+issue.Message)
		}
	}
	sort.Strings(parts)
	return status.Errorf(codes.InvalidArgument, "validation error: %s", strings.Join(parts, "; "))
}

// toStatus maps family errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, family.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, family.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, family.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func reply(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := encodeStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode reply: %v", err))
	}
	return out, nil
}
