package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmorozova/inventory-api/internal/models"
)

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":        "Widget",
		"price":       9.99,
		"quantity":    3,
		"description": "x",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/add-product", payload)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "Widget", created.Name)
	require.Equal(t, 9.99, created.Price)
	require.Equal(t, 3, created.Quantity)
	require.Equal(t, "x", created.Description)

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/products/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues("1")
	require.NoError(t, env.P.GetProduct(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	var fetched models.Product
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, created.Name, fetched.Name)
	require.Equal(t, created.Price, fetched.Price)
	require.Equal(t, created.Quantity, fetched.Quantity)
	require.Equal(t, created.Description, fetched.Description)
}

func TestCreateProductMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/add-product", map[string]interface{}{
		"name": "Incomplete Product",
	})
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "All fields are required.", jsonField(t, rec, "error"))

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestCreateProductZeroPriceAllowed(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":        "Freebie",
		"price":       0,
		"quantity":    0,
		"description": "giveaway",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/add-product", payload)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, float64(0), created.Price)
	require.Equal(t, 0, created.Quantity)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("Test Product", 100, 5, "Test Description")

	rec, c := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	require.Equal(t, "Test Product", products[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/999999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999999")
	require.NoError(t, env.P.GetProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", jsonField(t, rec, "message"))
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("Old Product", 50, 5, "Old Description")

	payload := map[string]interface{}{
		"name":        "Updated Product",
		"price":       75,
		"quantity":    10,
		"description": "Updated Description",
	}
	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", payload)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Updated Product", updated.Name)
	require.Equal(t, float64(75), updated.Price)
	require.Equal(t, 10, updated.Quantity)
	require.Equal(t, "Updated Description", updated.Description)
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	original := env.createProduct("Old Product", 50, 5, "Old Description")

	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", map[string]interface{}{
		"name": "Renamed",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, original.ID).Error)
	require.Equal(t, "Renamed", stored.Name)
	require.Equal(t, original.Price, stored.Price)
	require.Equal(t, original.Quantity, stored.Quantity)
	require.Equal(t, original.Description, stored.Description)
}

func TestUpdateProductZeroPrice(t *testing.T) {
	env := newTestEnv(t)
	original := env.createProduct("Sale Item", 50, 5, "Description")

	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", map[string]interface{}{
		"price": 0,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, original.ID).Error)
	require.Equal(t, float64(0), stored.Price)
	require.Equal(t, original.Name, stored.Name)
}

func TestUpdateProductEmptyBody(t *testing.T) {
	env := newTestEnv(t)
	original := env.createProduct("Product To Update", 100, 5, "Description")

	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", map[string]interface{}{})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "At least one field is required to update.", jsonField(t, rec, "error"))

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, original.ID).Error)
	require.Equal(t, original.Name, stored.Name)
	require.Equal(t, original.Price, stored.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPut, "/products/999999", map[string]interface{}{
		"name": "Non-existing Product",
	})
	c.SetParamNames("id")
	c.SetParamValues("999999")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found.", jsonField(t, rec, "error"))
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("Product To Delete", 50, 5, "Description")

	rec, c := env.doJSONRequest(http.MethodDelete, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product deleted successfully.", jsonField(t, rec, "message"))

	rec2, c2 := env.doJSONRequest(http.MethodDelete, "/products/1", nil)
	c2.SetParamNames("id")
	c2.SetParamValues("1")
	require.NoError(t, env.P.DeleteProduct(c2))
	require.Equal(t, http.StatusNotFound, rec2.Code)
	require.Equal(t, "Product not found.", jsonField(t, rec2, "error"))
}
