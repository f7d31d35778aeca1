// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slicelnE1wrzg9mCeS8LhutCnPwΞΞ = ord.NewSliceSer[string](ord.String)
	slicez8pupbnLiUΣoL1U9o4YDlAΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var CodeMUS = codeMUS{}

type codeMUS struct{}

func (s codeMUS) Marshal(v Code, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Chapter, bs[n:])
	n += slicelnE1wrzg9mCeS8LhutCnPwΞΞ.Marshal(v.Synonyms, bs[n:])
	n += slicez8pupbnLiUΣoL1U9o4YDlAΞΞ.Marshal(v.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s codeMUS) Unmarshal(bs []byte) (v Code, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chapter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Synonyms, n1, err = slicelnE1wrzg9mCeS8LhutCnPwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicez8pupbnLiUΣoL1U9o4YDlAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s codeMUS) Size(v Code) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Chapter)
	size += slicelnE1wrzg9mCeS8LhutCnPwΞΞ.Size(v.Synonyms)
	size += slicez8pupbnLiUΣoL1U9o4YDlAΞΞ.Size(v.Vector)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s codeMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicelnE1wrzg9mCeS8LhutCnPwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicez8pupbnLiUΣoL1U9o4YDlAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var DatasetInfoMUS = datasetInfoMUS{}

type datasetInfoMUS struct{}

func (s datasetInfoMUS) Marshal(v DatasetInfo, bs []byte) (n int) {
	n = ord.String.Marshal(v.Fingerprint, bs)
	n += ord.String.Marshal(v.EmbeddingModel, bs[n:])
	n += varint.Int.Marshal(v.Dimension, bs[n:])
	n += varint.Int.Marshal(v.CodeCount, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
}

func (s datasetInfoMUS) Unmarshal(bs []byte) (v DatasetInfo, n int, err error) {
	v.Fingerprint, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CodeCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s datasetInfoMUS) Size(v DatasetInfo) (size int) {
	size = ord.String.Size(v.Fingerprint)
	size += ord.String.Size(v.EmbeddingModel)
	size += varint.Int.Size(v.Dimension)
	size += varint.Int.Size(v.CodeCount)
	return size + raw.TimeUnixMicro.Size(v.CreatedAt)
}

func (s datasetInfoMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
