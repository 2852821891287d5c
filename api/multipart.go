package api

import (
	"bytes"
	"io"
	"mime/multipart"
)

type MultiPartParam struct {
	Name  string
	Value string
}

type MultiPartFile struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

func multiPartForm(params []MultiPartParam, files []MultiPartFile) (io.Reader, string, error) {
	var b bytes.Buffer
	writer := multipart.NewWriter(&b)

	for _, param := range params {
		err := writer.WriteField(param.Name, param.Value)
		if err != nil {
			return nil, "", err
		}
	}

	for _, file := range files {
		fw, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return nil, "", err
		}
		_, err = io.Copy(fw, file.Content)
		if err != nil {
			return nil, "", err
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", err
	}

	return &b, writer.FormDataContentType(), nil
}
