package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/hasura/go-graphql-client"
)

const defaultRequestTimeout = 10 * time.Second

// GraphQLClient implements Client against a Hasura-style GraphQL endpoint.
type GraphQLClient struct {
	endpointURL string
	httpClient  *http.Client
	gql         *graphql.Client
	timeout     time.Duration
	log         logging.Logger
}

// NewContactServiceClient returns a client for the GraphQL endpoint at
// endpointURL. Every request is bounded by timeout; zero selects a default.
func NewContactServiceClient(endpointURL string, timeout time.Duration, log logging.Logger) *GraphQLClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	httpClient := &http.Client{}
	return &GraphQLClient{
		endpointURL: endpointURL,
		httpClient:  httpClient,
		gql:         graphql.NewClient(endpointURL, httpClient),
		timeout:     timeout,
		log:         log.With("component", "graphql", "endpoint", endpointURL),
	}
}

func (c *GraphQLClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// exec runs one GraphQL document and decodes its data object into out.
func (c *GraphQLClient) exec(ctx context.Context, op string, query string, vars map[string]any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	data, err := c.gql.ExecRaw(ctx, query, vars)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "elapsed", time.Since(start), "error", err)
		return c.mapError(err)
	}
	c.log.Debug(ctx, "request done", "op", op, "elapsed", time.Since(start))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", common.ErrNetwork, op, err)
	}
	return nil
}

func (c *GraphQLClient) ListContacts(ctx context.Context, params models.ListParams) ([]models.ContactRecord, error) {
	vars := map[string]any{
		"limit":  params.Limit,
		"offset": params.Offset,
	}
	if params.OrderBy != "" {
		vars["order_by"] = []map[string]string{{params.OrderBy: "desc"}}
	}
	if params.Filter != "" {
		pattern := "%" + params.Filter + "%"
		vars["where"] = map[string]any{
			"_or": []map[string]any{
				{"first_name": map[string]string{"_ilike": pattern}},
				{"last_name": map[string]string{"_ilike": pattern}},
			},
		}
	}

	var resp struct {
		Contact []models.ContactRecord `json:"contact"`
	}
	if err := c.exec(ctx, "GetContactList", queryContactList, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Contact, nil
}

func (c *GraphQLClient) GetContact(ctx context.Context, id int) (*models.ContactRecord, error) {
	var resp struct {
		Contact *models.ContactRecord `json:"contact_by_pk"`
	}
	if err := c.exec(ctx, "GetContactDetail", queryContactDetail, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Contact, nil
}

func (c *GraphQLClient) FindByName(ctx context.Context, firstName, lastName string) ([]models.ContactRecord, error) {
	var resp struct {
		Contact []models.ContactRecord `json:"contact"`
	}
	vars := map[string]any{"first_name": firstName, "last_name": lastName}
	if err := c.exec(ctx, "GetContactByName", queryContactByName, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Contact, nil
}

func (c *GraphQLClient) CreateContact(ctx context.Context, firstName, lastName string, numbers []string) (*models.ContactRecord, error) {
	phones := make([]map[string]string, 0, len(numbers))
	for _, n := range numbers {
		phones = append(phones, map[string]string{"number": n})
	}

	var resp struct {
		InsertContact struct {
			Returning []models.ContactRecord `json:"returning"`
		} `json:"insert_contact"`
	}
	vars := map[string]any{"first_name": firstName, "last_name": lastName, "phones": phones}
	if err := c.exec(ctx, "AddContactWithPhones", mutationAddContact, vars, &resp); err != nil {
		return nil, err
	}
	if len(resp.InsertContact.Returning) == 0 {
		return nil, fmt.Errorf("%w: insert_contact returned no rows", common.ErrNetwork)
	}
	return &resp.InsertContact.Returning[0], nil
}

func (c *GraphQLClient) UpdateContact(ctx context.Context, id int, update models.NameUpdate) error {
	var resp struct {
		Updated *struct {
			ID int `json:"id"`
		} `json:"update_contact_by_pk"`
	}
	vars := map[string]any{"id": id, "_set": update}
	if err := c.exec(ctx, "EditContactById", mutationEditContact, vars, &resp); err != nil {
		return err
	}
	if resp.Updated == nil {
		return fmt.Errorf("update contact %d: %w", id, common.ErrStaleContact)
	}
	return nil
}

func (c *GraphQLClient) AddPhone(ctx context.Context, contactID int, number string) error {
	vars := map[string]any{"contact_id": contactID, "number": number}
	return c.exec(ctx, "AddPhoneNumber", mutationAddPhone, vars, nil)
}

func (c *GraphQLClient) EditPhone(ctx context.Context, contactID int, oldNumber, newNumber string) error {
	var resp struct {
		Updated *struct {
			Contact struct {
				ID int `json:"id"`
			} `json:"contact"`
		} `json:"update_phone_by_pk"`
	}
	vars := map[string]any{
		"pk_columns":       map[string]any{"number": oldNumber, "contact_id": contactID},
		"new_phone_number": newNumber,
	}
	if err := c.exec(ctx, "EditPhoneNumber", mutationEditPhone, vars, &resp); err != nil {
		return err
	}
	if resp.Updated == nil {
		return fmt.Errorf("edit phone %q of contact %d: %w", oldNumber, contactID, common.ErrInconsistentEdit)
	}
	return nil
}

func (c *GraphQLClient) DeletePhone(ctx context.Context, contactID int, number string) (int, error) {
	var resp struct {
		DeletePhone struct {
			AffectedRows int `json:"affected_rows"`
		} `json:"delete_phone"`
	}
	vars := map[string]any{"contact_id": contactID, "number": number}
	if err := c.exec(ctx, "DeletePhoneByNumber", mutationDeletePhone, vars, &resp); err != nil {
		return 0, err
	}
	return resp.DeletePhone.AffectedRows, nil
}

func (c *GraphQLClient) DeleteContact(ctx context.Context, id int) (*models.ContactRecord, error) {
	var resp struct {
		Deleted *models.ContactRecord `json:"delete_contact_by_pk"`
	}
	if err := c.exec(ctx, "DeleteContact", mutationDeleteContact, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Deleted, nil
}

// mapError classifies service errors into the common sentinels. The GraphQL
// extension code is checked first; the substring match on the constraint
// name covers servers that only report it in the message.
func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	var gqlErrs graphql.Errors
	if errors.As(err, &gqlErrs) {
		for _, e := range gqlErrs {
			code, _ := e.Extensions["code"].(string)
			if code == "constraint-violation" && strings.Contains(e.Message, common.PhoneNumberConstraint) {
				return common.ErrPhoneAlreadyUsed
			}
		}
	}

	if strings.Contains(err.Error(), `unique constraint "`+common.PhoneNumberConstraint+`"`) {
		return common.ErrPhoneAlreadyUsed
	}

	return fmt.Errorf("%w: %w", common.ErrNetwork, err)
}
