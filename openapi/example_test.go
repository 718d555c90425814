package openapi_test

import (
	"fmt"

	v "github.com/Gobd/paramvalidation"
	"github.com/Gobd/paramvalidation/openapi"
)

type CreateItemRequest struct {
	v.BaseRequest
	ItemName  string  `validate:"required,length=1|200"`
	UnitPrice float64 `validate:"required,min=0.01"`
}

type ListItemsRequest struct {
	v.BaseRequest
	PageSize int    `validate:"min=1,max=100"`
	Sort     string `validate:"in=name|price"`
}

type UpdateItemRequest struct {
	v.BaseRequest
	ItemID   int64  `validate:"min=1"`
	ItemName string `validate:"length=1|200"`
}

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func ExamplePost() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")

	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{
		Summary:  "Create an item",
		Request:  &CreateItemRequest{},
		Response: Item{},
	})

	op := doc.Paths.Value("/items").Post
	schema := op.RequestBody.Value.Content["application/json"].Schema.Value
	fmt.Println(op.OperationID)
	fmt.Println(schema.Required)
	fmt.Println(op.Responses.Value(openapi.StatusValidationFailed).Value.Content["application/json"].Schema.Value.Properties["itemName"] != nil)
	// Output:
	// createItem
	// [item_name unit_price]
	// true
}

func ExampleDocBase() {
	doc := openapi.DocBase("My Service", "A cool service", "0.1.0")
	fmt.Println(doc.Info.Title)
	fmt.Println(doc.OpenAPI)
	// Output:
	// My Service
	// 3.0.3
}

func ExampleGet() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")

	openapi.Get(doc, "/items", "listItems", openapi.Endpoint{
		Summary:  "List all items",
		Request:  &ListItemsRequest{},
		Response: []Item{},
	})

	op := doc.Paths.Value("/items").Get
	fmt.Println(op.OperationID)
	for _, p := range op.Parameters {
		fmt.Println(p.Value.In, p.Value.Name)
	}
	// Output:
	// listItems
	// query page_size
	// query sort
}

func ExamplePatch() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")

	openapi.Patch(doc, "/items/{item_id}", "renameItem", openapi.Endpoint{
		Request: &UpdateItemRequest{},
	})

	op := doc.Paths.Value("/items/{item_id}").Patch
	for _, p := range op.Parameters {
		fmt.Println(p.Value.In, p.Value.Name, p.Value.Required)
	}
	for name := range op.RequestBody.Value.Content["application/json"].Schema.Value.Properties {
		fmt.Println("body", name)
	}
	// Output:
	// path item_id true
	// body item_name
}
