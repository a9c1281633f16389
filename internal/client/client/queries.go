package client

const queryContactList = `
query GetContactList(
  $limit: Int
  $offset: Int
  $order_by: [contact_order_by!]
  $where: contact_bool_exp
) {
  contact(limit: $limit, offset: $offset, order_by: $order_by, where: $where) {
    created_at
    first_name
    id
    last_name
    phones {
      number
    }
  }
}`

const queryContactDetail = `
query GetContactDetail($id: Int!) {
  contact_by_pk(id: $id) {
    last_name
    id
    first_name
    created_at
    phones {
      id
      number
    }
  }
}`

const queryContactByName = `
query GetContactByName($first_name: String!, $last_name: String!) {
  contact(where: { first_name: { _eq: $first_name }, last_name: { _eq: $last_name } }) {
    created_at
    first_name
    id
    last_name
    phones {
      number
    }
  }
}`

const mutationAddContact = `
mutation AddContactWithPhones(
  $first_name: String!
  $last_name: String!
  $phones: [phone_insert_input!]!
) {
  insert_contact(
    objects: { first_name: $first_name, last_name: $last_name, phones: { data: $phones } }
  ) {
    returning {
      first_name
      last_name
      id
      created_at
      phones {
        number
      }
    }
  }
}`

const mutationEditContact = `
mutation EditContactById($id: Int!, $_set: contact_set_input) {
  update_contact_by_pk(pk_columns: { id: $id }, _set: $_set) {
    id
    first_name
    last_name
  }
}`

const mutationAddPhone = `
mutation AddPhoneNumber($contact_id: Int!, $number: String!) {
  insert_phone(objects: { contact_id: $contact_id, number: $number }) {
    affected_rows
  }
}`

const mutationEditPhone = `
mutation EditPhoneNumber($pk_columns: phone_pk_columns_input!, $new_phone_number: String!) {
  update_phone_by_pk(pk_columns: $pk_columns, _set: { number: $new_phone_number }) {
    contact {
      id
    }
  }
}`

const mutationDeletePhone = `
mutation DeletePhoneByNumber($contact_id: Int!, $number: String!) {
  delete_phone(where: { contact_id: { _eq: $contact_id }, number: { _eq: $number } }) {
    affected_rows
  }
}`

const mutationDeleteContact = `
mutation DeleteContact($id: Int!) {
  delete_contact_by_pk(id: $id) {
    first_name
    last_name
    id
  }
}`
